package handler

import (
	"github.com/gin-gonic/gin"

	"chatline/internal/apperr"
)

// successBody is the standard {type, heading, message} success response.
func successBody(message string) gin.H {
	return gin.H{
		"type":    "success",
		"heading": "Success",
		"message": message,
	}
}

func writeError(c *gin.Context, err error) {
	status, body := apperr.Response(err)
	c.JSON(status, body)
}

func writeValidation(c *gin.Context, heading, message string) {
	writeError(c, apperr.Validation(heading, message))
}

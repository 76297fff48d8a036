package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatline/internal/service"
)

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandler exposes registration and login.
type AuthHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
}

type authHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) AuthHandler {
	return &authHandler{auth: auth}
}

func (h *authHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidation(c, "Field require to fill", "Please fill all required fields.")
		return
	}

	if err := h.auth.Register(c.Request.Context(), req.FullName, req.Email, req.Password); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, successBody("User registered successfully."))
}

func (h *authHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidation(c, "Field require to fill", "Please fill all required fields.")
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID.Hex(),
			"email": user.Email,
		},
		"token": token,
	})
}

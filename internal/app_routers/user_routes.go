package approuters

import (
	"github.com/gin-gonic/gin"

	"chatline/internal/configuration"
)

func UserRouters(router *gin.Engine, container *configuration.Container) {
	api := router.Group("/api")
	{
		api.POST("/register", container.AuthHandler.Register)
		api.POST("/login", container.AuthHandler.Login)
		api.POST("/userUpdate", container.UserHandler.UpdateProfile)
		api.POST("/userThemeUpdate", container.UserHandler.UpdateTheme)
		api.GET("/users", container.UserHandler.GetAllUsers)
		api.GET("/user/:userId", container.UserHandler.GetUser)
	}
}

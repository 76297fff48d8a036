package approuters

import (
	"github.com/gin-gonic/gin"

	"chatline/internal/configuration"
)

func ChatRouters(router *gin.Engine, container *configuration.Container) {
	api := router.Group("/api")
	{
		api.POST("/conversation", container.ConversationHandler.Create)
		api.POST("/createGroup", container.ConversationHandler.CreateGroup)
		api.GET("/conversations", container.ConversationHandler.ListAll)
		api.GET("/conversations/:userId", container.ConversationHandler.ListForUser)

		api.POST("/message", container.MessageHandler.Post)
		api.GET("/message/:conversationId/:senderId", container.MessageHandler.Fetch)
		api.GET("/messageReadUpdate/:conversationId/:senderId", container.MessageHandler.MarkRead)
		api.GET("/unreadMessagesCount/:conversationId/:senderId", container.MessageHandler.UnreadCount)
	}
}

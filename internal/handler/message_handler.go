package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatline/internal/service"
)

type postMessageRequest struct {
	ConversationID string `json:"conversationId"`
	SenderID       string `json:"senderId"`
	Message        string `json:"message"`
	Type           string `json:"type"`
	TimeStamp      int64  `json:"timeStamp"`
	ReceiverID     string `json:"receiverId"`
}

// MessageHandler exposes the persistence-facing message operations.
type MessageHandler interface {
	Post(c *gin.Context)
	Fetch(c *gin.Context)
	MarkRead(c *gin.Context)
	UnreadCount(c *gin.Context)
}

type messageHandler struct {
	messages service.MessageService
}

func NewMessageHandler(messages service.MessageService) MessageHandler {
	return &messageHandler{messages: messages}
}

func (h *messageHandler) Post(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidation(c, "Field require to fill", "Please fill all required fields.")
		return
	}

	_, err := h.messages.Post(c.Request.Context(), service.PostMessageInput{
		ConversationID: req.ConversationID,
		SenderID:       req.SenderID,
		Message:        req.Message,
		Type:           req.Type,
		TimeStamp:      req.TimeStamp,
		ReceiverID:     req.ReceiverID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully."})
}

// Fetch lists a conversation's messages and, as a side effect, marks the
// given sender's messages read in the same request.
func (h *messageHandler) Fetch(c *gin.Context) {
	views, err := h.messages.FetchForSender(c.Request.Context(), c.Param("conversationId"), c.Param("senderId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *messageHandler) MarkRead(c *gin.Context) {
	if err := h.messages.MarkRead(c.Request.Context(), c.Param("conversationId"), c.Param("senderId")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message read successfully."})
}

func (h *messageHandler) UnreadCount(c *gin.Context) {
	records, count, err := h.messages.Unread(c.Request.Context(), c.Param("conversationId"), c.Param("senderId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message read successfully.",
		"count":   count,
		"data":    records,
	})
}

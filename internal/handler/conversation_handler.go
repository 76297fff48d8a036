package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatline/internal/service"
)

type createConversationRequest struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
}

type createGroupRequest struct {
	GroupName string   `json:"groupName"`
	AdminID   string   `json:"adminId"`
	UserIDs   []string `json:"userIds"`
}

// ConversationHandler exposes conversation creation and listing.
type ConversationHandler interface {
	Create(c *gin.Context)
	CreateGroup(c *gin.Context)
	ListAll(c *gin.Context)
	ListForUser(c *gin.Context)
}

type conversationHandler struct {
	conversations service.ConversationService
}

func NewConversationHandler(conversations service.ConversationService) ConversationHandler {
	return &conversationHandler{conversations: conversations}
}

func (h *conversationHandler) Create(c *gin.Context) {
	var req createConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidation(c, "Field require to fill", "Please fill all required fields.")
		return
	}

	id, err := h.conversations.CreateDirect(c.Request.Context(), req.SenderID, req.ReceiverID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"message": "Conversation created successfully.",
	})
}

func (h *conversationHandler) CreateGroup(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidation(c, "Field require to fill", "Please fill all required fields.")
		return
	}

	if err := h.conversations.CreateGroup(c.Request.Context(), req.GroupName, req.AdminID, req.UserIDs); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, successBody("Group Created successfully."))
}

func (h *conversationHandler) ListAll(c *gin.Context) {
	conversations, err := h.conversations.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversations)
}

func (h *conversationHandler) ListForUser(c *gin.Context) {
	views, err := h.conversations.ProjectForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

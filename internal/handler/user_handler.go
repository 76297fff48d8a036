package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatline/internal/repo"
	"chatline/internal/service"
)

type updateProfileRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	NickName     string `json:"nickName"`
	Email        string `json:"email"`
	Status       string `json:"status"`
	ProfileImage string `json:"profileImage"`
}

type updateThemeRequest struct {
	Email string `json:"email"`
	Theme int    `json:"theme"`
}

// UserHandler exposes profile mutation and user listing.
type UserHandler interface {
	UpdateProfile(c *gin.Context)
	UpdateTheme(c *gin.Context)
	GetAllUsers(c *gin.Context)
	GetUser(c *gin.Context)
}

type userHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) UserHandler {
	return &userHandler{users: users}
}

func (h *userHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidation(c, "Error", "Please fill all required fields.")
		return
	}

	// Per-field messages, matching the client's expectations.
	switch {
	case req.FirstName == "":
		writeValidation(c, "Error", "Please fill you firstName field.")
		return
	case req.NickName == "":
		writeValidation(c, "Error", "Please fill you nickName field.")
		return
	case req.Email == "":
		writeValidation(c, "Error", "Please fill you email  field.")
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), req.Email, repo.ProfileUpdate{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		NickName:     req.NickName,
		Status:       req.Status,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	body := successBody("Successfully Updated User")
	body["data"] = user
	c.JSON(http.StatusOK, body)
}

func (h *userHandler) UpdateTheme(c *gin.Context) {
	var req updateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		writeValidation(c, "Error", "Could not get email. Please refresh page.")
		return
	}

	user, err := h.users.UpdateTheme(c.Request.Context(), req.Email, req.Theme)
	if err != nil {
		writeError(c, err)
		return
	}

	body := successBody("Successfully theme has been updated.")
	body["data"] = user
	c.JSON(http.StatusOK, body)
}

func (h *userHandler) GetAllUsers(c *gin.Context) {
	profiles, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	payload := make([]gin.H, 0, len(profiles))
	for _, profile := range profiles {
		payload = append(payload, gin.H{"user": profile})
	}
	c.JSON(http.StatusOK, payload)
}

func (h *userHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

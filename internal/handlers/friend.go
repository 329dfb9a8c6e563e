package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/strivetrack/strivetrack-api/internal/errors"
	"github.com/strivetrack/strivetrack-api/internal/services"
)

type FriendHandler struct {
	friendService *services.FriendService
}

func NewFriendHandler(friendService *services.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

// ListFriends returns accepted friends and pending requests
func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	friends, err := h.friendService.ListFriends(c.Request.Context(), userID)
	if err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// SendRequest sends a friend request by email
func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type SendRequestRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req SendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	edge, err := h.friendService.SendRequest(c.Request.Context(), userID, req.Email)
	if err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, edge)
}

// AcceptRequest accepts a pending request addressed to the user
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	edge, err := h.friendService.AcceptRequest(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusOK, edge)
}

// RemoveFriend declines a request or removes a friend
func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.friendService.RemoveFriend(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend removed successfully"})
}

func respondFriendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrFriendRequestNotFound),
		errors.Is(err, services.ErrFriendNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCannotFriendSelf):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAlreadyFriends):
		apierrors.Conflict(c, err.Error())
	default:
		internalError(c, err)
	}
}

package functions

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haiderali9-9/edifice/internal/models"
	"github.com/haiderali9-9/edifice/internal/store"
)

type inviteRequest struct {
	Email string `json:"email"`
}

// handleInvite creates an invitation row and replies with the URL the
// invitee would receive by email.
func (h *Handler) handleInvite(c *gin.Context) {
	callerID, ok := h.authenticate(c)
	if !ok {
		return
	}

	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	db, err := h.Store.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	days := h.ExpiryDays
	if days <= 0 {
		days = 7
	}
	inv := models.Invitation{
		ID:        uuid.NewString(),
		Email:     req.Email,
		InvitedBy: callerID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Duration(days) * 24 * time.Hour),
	}
	if err := db.Create(&inv).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": store.Wrap("create invitation", err).Error()})
		return
	}

	inviteURL := fmt.Sprintf("%s/accept-invite?token=%s", h.BaseURL, inv.Token)
	h.Notifier.InviteSent(req.Email)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Invitation sent to %s", req.Email),
		"debug":   gin.H{"invitationUrl": inviteURL},
	})
}

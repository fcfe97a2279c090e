package functions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/haiderali9-9/edifice/internal/models"
)

type adminEmailsRequest struct {
	UserIDs []string `json:"userIds"`
}

type userEmail struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// handleAdminEmails resolves profile IDs to email addresses. Only
// admins may call it.
func (h *Handler) handleAdminEmails(c *gin.Context) {
	callerID, ok := h.authenticate(c)
	if !ok {
		return
	}

	isAdmin, err := h.checkAdmin(callerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}

	var req adminEmailsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.UserIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userIds is required"})
		return
	}

	db, err := h.Store.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var profiles []models.Profile
	if err := db.Where("id IN ?", req.UserIDs).Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	users := make([]userEmail, 0, len(profiles))
	for _, p := range profiles {
		users = append(users, userEmail{ID: p.ID, Email: p.Email})
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// checkAdmin runs the configured admin capability check, defaulting to
// the is_admin flag on the caller's profile. An unknown caller is not
// an admin.
func (h *Handler) checkAdmin(callerID string) (bool, error) {
	if h.AdminCheck != nil {
		return h.AdminCheck(callerID)
	}
	db, err := h.Store.DB()
	if err != nil {
		return false, err
	}
	var profile models.Profile
	if err := db.First(&profile, "id = ?", callerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return profile.IsAdmin, nil
}

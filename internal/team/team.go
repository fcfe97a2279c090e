// Package team provides project membership operations.
package team

import (
	"errors"

	"github.com/haiderali9-9/edifice/internal/models"
	"github.com/haiderali9-9/edifice/internal/store"
	"gorm.io/gorm"
)

// Member is a membership row joined with its profile for display.
type Member struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AddMember adds a profile to a project with a role from the fixed
// vocabulary. A user can hold only one membership per project.
func AddMember(s *store.Store, projectID, userID, role string) (*models.TeamMember, error) {
	if projectID == "" {
		return nil, store.Invalid("team: project is required")
	}
	if userID == "" {
		return nil, store.Invalid("team: user is required")
	}
	if !models.ValidStatus(models.TeamRoles, role) {
		return nil, store.Invalid("team: invalid role %q", role)
	}

	db, err := s.DB()
	if err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return nil, store.Wrap("team: check project "+projectID, err)
	}
	if count == 0 {
		return nil, store.NotFound("project", projectID)
	}
	if err := db.Model(&models.Profile{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, store.Wrap("team: check profile "+userID, err)
	}
	if count == 0 {
		return nil, store.NotFound("profile", userID)
	}

	if err := db.Model(&models.TeamMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error; err != nil {
		return nil, store.Wrap("team: check membership", err)
	}
	if count > 0 {
		return nil, store.Conflict("team", userID, "already a member of "+projectID)
	}

	id, err := store.NewID("tm")
	if err != nil {
		return nil, err
	}
	m := models.TeamMember{
		ID:        id,
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	if err := db.Create(&m).Error; err != nil {
		return nil, store.Wrap("team: add member", err)
	}
	return &m, nil
}

// ListMembers returns a project's members joined with profile fields,
// oldest membership first.
func ListMembers(s *store.Store, projectID string) ([]Member, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	members := []Member{}
	err = db.Model(&models.TeamMember{}).
		Select("team_members.id, team_members.project_id, team_members.user_id, team_members.role, profiles.email, profiles.first_name, profiles.last_name").
		Joins("JOIN profiles ON profiles.id = team_members.user_id").
		Where("team_members.project_id = ?", projectID).
		Order("team_members.created_at ASC").
		Scan(&members).Error
	if err != nil {
		return nil, store.Wrap("team: list members of "+projectID, err)
	}
	return members, nil
}

// UpdateRole changes a member's role.
func UpdateRole(s *store.Store, memberID, role string) (*models.TeamMember, error) {
	if !models.ValidStatus(models.TeamRoles, role) {
		return nil, store.Invalid("team: invalid role %q", role)
	}
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	res := db.Model(&models.TeamMember{}).Where("id = ?", memberID).Update("role", role)
	if res.Error != nil {
		return nil, store.Wrap("team: update role of "+memberID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, store.NotFound("team member", memberID)
	}

	var m models.TeamMember
	if err := db.Where("id = ?", memberID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.NotFound("team member", memberID)
		}
		return nil, store.Wrap("team: reload "+memberID, err)
	}
	return &m, nil
}

// RemoveMember removes a membership row.
func RemoveMember(s *store.Store, memberID string) error {
	db, err := s.DB()
	if err != nil {
		return err
	}
	res := db.Where("id = ?", memberID).Delete(&models.TeamMember{})
	if res.Error != nil {
		return store.Wrap("team: remove member "+memberID, res.Error)
	}
	if res.RowsAffected == 0 {
		return store.NotFound("team member", memberID)
	}
	return nil
}

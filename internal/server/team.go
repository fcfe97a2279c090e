package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haiderali9-9/edifice/internal/store"
	"github.com/haiderali9-9/edifice/internal/team"
)

type memberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func handleMemberAdd(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req memberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, store.Invalid("team: invalid request body: %v", err))
			return
		}
		m, err := team.AddMember(s, c.Param("id"), req.UserID, req.Role)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}

func handleMemberList(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		members, err := team.ListMembers(s, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, members)
	}
}

func handleMemberUpdateRole(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req memberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, store.Invalid("team: invalid request body: %v", err))
			return
		}
		m, err := team.UpdateRole(s, c.Param("id"), req.Role)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

func handleMemberRemove(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := team.RemoveMember(s, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

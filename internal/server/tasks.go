package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haiderali9-9/edifice/internal/store"
	"github.com/haiderali9-9/edifice/internal/task"
)

type taskRequest struct {
	ProjectID   string     `json:"project_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func handleTaskCreate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req taskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, store.Invalid("task: invalid request body: %v", err))
			return
		}
		t, err := task.Create(s, task.CreateOpts{
			ProjectID:   req.ProjectID,
			Name:        req.Name,
			Description: req.Description,
			Status:      req.Status,
			Priority:    req.Priority,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, t)
	}
}

func handleTaskList(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tasks, err := task.List(s, task.ListFilters{
			ProjectID: c.Query("project_id"),
			Status:    c.Query("status"),
			Priority:  c.Query("priority"),
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, tasks)
	}
}

func handleTaskGet(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := task.Get(s, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

func handleTaskUpdate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil {
			writeError(c, store.Invalid("task: invalid request body: %v", err))
			return
		}
		t, err := task.Update(s, c.Param("id"), updates)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

func handleTaskDelete(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := task.Delete(s, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

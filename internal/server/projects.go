package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haiderali9-9/edifice/internal/project"
	"github.com/haiderali9-9/edifice/internal/store"
)

type projectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Client      string     `json:"client"`
	Location    string     `json:"location"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Budget      float64    `json:"budget"`
	Status      string     `json:"status"`
	ManagerID   string     `json:"manager_id"`
}

func handleProjectCreate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req projectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, store.Invalid("project: invalid request body: %v", err))
			return
		}
		p, err := project.Create(s, project.CreateOpts{
			Name:        req.Name,
			Description: req.Description,
			Client:      req.Client,
			Location:    req.Location,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Budget:      req.Budget,
			Status:      req.Status,
			ManagerID:   req.ManagerID,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func handleProjectList(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := project.List(s, project.ListFilters{
			Status:    c.Query("status"),
			Client:    c.Query("client"),
			ManagerID: c.Query("manager_id"),
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, projects)
	}
}

func handleProjectGet(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := project.Get(s, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// handleProjectUpdate applies a partial update. An If-Match header
// carrying the caller's version token turns the write into a
// compare-and-swap that fails 409 when stale.
func handleProjectUpdate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil {
			writeError(c, store.Invalid("project: invalid request body: %v", err))
			return
		}
		var (
			p   interface{}
			err error
		)
		if match := c.GetHeader("If-Match"); match != "" {
			version, convErr := strconv.Atoi(match)
			if convErr != nil {
				writeError(c, store.Invalid("project: If-Match must be a version number"))
				return
			}
			p, err = project.UpdateWithVersion(s, c.Param("id"), version, updates)
		} else {
			p, err = project.Update(s, c.Param("id"), updates)
		}
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func handleProjectDelete(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := project.Delete(s, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func handleProjectStats(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := project.TaskStats(s, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func handleProjectRecompute(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		pct, err := project.RecomputeCompletion(s, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"completion": pct})
	}
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haiderali9-9/edifice/internal/resource"
	"github.com/haiderali9-9/edifice/internal/store"
)

type resourceRequest struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Cost     float64 `json:"cost"`
}

type allocateRequest struct {
	ProjectID string  `json:"project_id"`
	Quantity  float64 `json:"quantity"`
}

func handleResourceCreate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req resourceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, store.Invalid("resource: invalid request body: %v", err))
			return
		}
		r, err := resource.Create(s, resource.CreateOpts{
			Name:     req.Name,
			Type:     req.Type,
			Quantity: req.Quantity,
			Unit:     req.Unit,
			Cost:     req.Cost,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, r)
	}
}

func handleResourceList(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		resources, err := resource.List(s, c.Query("type"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, resources)
	}
}

func handleResourceGet(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := resource.Get(s, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

func handleResourceUpdate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil {
			writeError(c, store.Invalid("resource: invalid request body: %v", err))
			return
		}
		r, err := resource.Update(s, c.Param("id"), updates)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

func handleResourceDelete(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := resource.Delete(s, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func handleAllocate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req allocateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, store.Invalid("resource: invalid request body: %v", err))
			return
		}
		a, err := resource.Allocate(s, c.Param("id"), req.ProjectID, req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, a)
	}
}

func handleRelease(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := resource.Release(s, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func handleProjectAllocations(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		allocs, err := resource.Allocations(s, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, allocs)
	}
}

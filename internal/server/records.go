package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haiderali9-9/edifice/internal/document"
	"github.com/haiderali9-9/edifice/internal/expense"
	"github.com/haiderali9-9/edifice/internal/issue"
	"github.com/haiderali9-9/edifice/internal/store"
)

type issueRequest struct {
	ProjectID   string `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	ReportedBy  string `json:"reported_by"`
	AssignedTo  string `json:"assigned_to"`
}

type documentRequest struct {
	ProjectID  string `json:"project_id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	URL        string `json:"url"`
	UploadedBy string `json:"uploaded_by"`
}

type expenseRequest struct {
	ProjectID   string     `json:"project_id"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Amount      float64    `json:"amount"`
	IncurredOn  *time.Time `json:"incurred_on"`
}

func handleIssueCreate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req issueRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, store.Invalid("issue: invalid request body: %v", err))
			return
		}
		i, err := issue.Create(s, issue.CreateOpts{
			ProjectID:   req.ProjectID,
			Title:       req.Title,
			Description: req.Description,
			Priority:    req.Priority,
			ReportedBy:  req.ReportedBy,
			AssignedTo:  req.AssignedTo,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, i)
	}
}

func handleIssueList(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		issues, err := issue.List(s, issue.ListFilters{
			ProjectID: c.Query("project_id"),
			Status:    c.Query("status"),
			Priority:  c.Query("priority"),
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, issues)
	}
}

func handleIssueGet(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		i, err := issue.Get(s, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, i)
	}
}

func handleIssueUpdate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil {
			writeError(c, store.Invalid("issue: invalid request body: %v", err))
			return
		}
		i, err := issue.Update(s, c.Param("id"), updates)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, i)
	}
}

func handleIssueDelete(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := issue.Delete(s, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func handleDocumentCreate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req documentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, store.Invalid("document: invalid request body: %v", err))
			return
		}
		d, err := document.Create(s, document.CreateOpts{
			ProjectID:  req.ProjectID,
			Name:       req.Name,
			Category:   req.Category,
			URL:        req.URL,
			UploadedBy: req.UploadedBy,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, d)
	}
}

func handleDocumentList(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, err := document.List(s, c.Query("project_id"), c.Query("category"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

func handleDocumentGet(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := document.Get(s, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

func handleDocumentDelete(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := document.Delete(s, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func handleExpenseCreate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req expenseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, store.Invalid("expense: invalid request body: %v", err))
			return
		}
		e, err := expense.Create(s, expense.CreateOpts{
			ProjectID:   req.ProjectID,
			Description: req.Description,
			Category:    req.Category,
			Amount:      req.Amount,
			IncurredOn:  req.IncurredOn,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, e)
	}
}

func handleExpenseList(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		expenses, err := expense.List(s, c.Query("project_id"), c.Query("category"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, expenses)
	}
}

func handleExpenseGet(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := expense.Get(s, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

func handleExpenseTotal(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		total, err := expense.ProjectTotal(s, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": total})
	}
}

func handleExpenseDelete(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := expense.Delete(s, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haiderali9-9/edifice/internal/invoice"
	"github.com/haiderali9-9/edifice/internal/store"
)

type invoiceItemRequest struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type invoiceRequest struct {
	ProjectID string               `json:"project_id"`
	Client    string               `json:"client"`
	IssuedOn  *time.Time           `json:"issued_on"`
	DueOn     *time.Time           `json:"due_on"`
	Items     []invoiceItemRequest `json:"items"`
}

type invoiceStatusRequest struct {
	Status string `json:"status"`
}

func handleInvoiceCreate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req invoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, store.Invalid("invoice: invalid request body: %v", err))
			return
		}
		items := make([]invoice.ItemOpts, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, invoice.ItemOpts{
				Description: it.Description,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
			})
		}
		inv, err := invoice.Create(s, invoice.CreateOpts{
			ProjectID: req.ProjectID,
			Client:    req.Client,
			IssuedOn:  req.IssuedOn,
			DueOn:     req.DueOn,
			Items:     items,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, inv)
	}
}

func handleInvoiceList(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		invoices, err := invoice.List(s, invoice.ListFilters{
			ProjectID: c.Query("project_id"),
			Status:    c.Query("status"),
			Client:    c.Query("client"),
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, invoices)
	}
}

func handleInvoiceGet(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		inv, err := invoice.Get(s, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, inv)
	}
}

func handleInvoiceStatus(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req invoiceStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, store.Invalid("invoice: invalid request body: %v", err))
			return
		}
		inv, err := invoice.UpdateStatus(s, c.Param("id"), req.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, inv)
	}
}

func handleInvoiceDelete(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := invoice.Delete(s, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

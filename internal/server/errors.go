package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haiderali9-9/edifice/internal/store"
)

// writeError maps the store error taxonomy to HTTP status codes and
// writes a {error} body. Store and configuration faults surface as 500;
// they are never swallowed below this layer.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case store.IsValidation(err):
		status = http.StatusBadRequest
	case store.IsNotFound(err):
		status = http.StatusNotFound
	case store.IsConflict(err):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// Package functions implements the two bearer-authenticated HTTP
// endpoints deployed alongside the API: sending invitations and
// resolving user IDs to emails for admins.
package functions

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haiderali9-9/edifice/internal/auth"
	"github.com/haiderali9-9/edifice/internal/notify"
	"github.com/haiderali9-9/edifice/internal/store"
)

// Handler holds the dependencies shared by both function endpoints.
type Handler struct {
	Store      *store.Store
	Secret     string
	BaseURL    string
	ExpiryDays int
	Notifier   *notify.Notifier

	// AdminCheck decides whether a caller may use the admin lookup.
	// Nil means "is_admin flag on the caller's profile".
	AdminCheck func(callerID string) (bool, error)
}

// Router builds a gin engine with both function routes mounted.
func (h *Handler) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), corsMiddleware())

	router.POST("/functions/invite", h.handleInvite)
	router.POST("/functions/admin-emails", h.handleAdminEmails)
	return router
}

// Start serves the function routes on their own listener. It blocks
// until ctx is cancelled, then shuts down gracefully.
func Start(ctx context.Context, h *Handler, port int, out io.Writer) error {
	if h.Store == nil {
		return fmt.Errorf("functions: store is required")
	}
	if port <= 0 {
		port = 8081
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: h.Router(),
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if out != nil {
		fmt.Fprintf(out, "Functions listening at http://localhost:%d\n", port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("functions: %w", err)
	}
	return nil
}

// corsMiddleware answers preflight requests with 200 and attaches
// permissive CORS headers to every response.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// authenticate verifies the bearer token and returns the caller's
// profile ID. On failure it writes a 401 and returns ok=false.
func (h *Handler) authenticate(c *gin.Context) (string, bool) {
	token := auth.ExtractBearer(c.Request)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
		return "", false
	}
	callerID, err := auth.Parse(token, h.Secret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return "", false
	}
	return callerID, true
}

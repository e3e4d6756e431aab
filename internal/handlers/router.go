package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/followup-tasks/internal/errors"
	"github.com/yukikurage/followup-tasks/internal/middleware"
)

// RouterOptions carries what SetupRouter needs to wire the endpoints.
type RouterOptions struct {
	TaskHandler *TaskHandler
	APIKeyHash  string
	Logger      *slog.Logger
}

// SetupRouter builds the gin engine. CORS runs first so preflight requests
// never reach the key check or the body parser. A POST to any path other
// than the named routes also creates a task.
func SetupRouter(opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORS())
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(opts.Logger))

	// Health check endpoint
	r.GET("/health", Health)

	requireKey := middleware.RequireAPIKey(opts.APIKeyHash)
	r.POST("/", requireKey, opts.TaskHandler.CreateTask)
	r.POST("/api/tasks", requireKey, opts.TaskHandler.CreateTask)

	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			apierrors.RespondWithError(c, http.StatusNotFound, "Not found")
			c.Abort()
			return
		}
		c.Next()
	}, requireKey, opts.TaskHandler.CreateTask)

	return r
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/followup-tasks/internal/dto"
	apierrors "github.com/yukikurage/followup-tasks/internal/errors"
	"github.com/yukikurage/followup-tasks/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
	logger      *slog.Logger
}

func NewTaskHandler(taskService *services.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask creates a follow-up task for an application.
// Every failure is turned into a {"error": ...} body here.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("invalid request body", slog.String("error", err.Error()))
		apierrors.Respond(c, services.ErrInvalidBody)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), req)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCreateTaskResponse(task.ID))
}

// Health reports that the server is up
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Task creation service is running",
	})
}

package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/followup-tasks/internal/dto"
	apierrors "github.com/yukikurage/followup-tasks/internal/errors"
	"github.com/yukikurage/followup-tasks/internal/models"
	"github.com/yukikurage/followup-tasks/internal/repository"
	"github.com/yukikurage/followup-tasks/internal/utils"
)

var (
	ErrInvalidBody         = apierrors.InvalidInput("Invalid request body")
	ErrInvalidTaskType     = apierrors.InvalidInput("Invalid task_type")
	ErrInvalidDueAt        = apierrors.InvalidInput("due_at must be a valid future timestamp")
	ErrApplicationNotFound = apierrors.NotFound("Application not found")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("task_type", func(fl validator.FieldLevel) bool {
		return models.TaskType(fl.Field().String()).Valid()
	})
	return v
}

// CreateTaskInput is a request that passed validation
type CreateTaskInput struct {
	ApplicationID string
	Type          models.TaskType
	DueAt         time.Time
}

// ParseCreateTaskRequest checks the raw request against now and returns the
// typed input. task_type is checked before due_at.
func ParseCreateTaskRequest(req dto.CreateTaskRequest, now time.Time) (CreateTaskInput, error) {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return CreateTaskInput{}, ErrInvalidTaskType
		}
		return CreateTaskInput{}, ErrInvalidBody
	}

	dueAt, err := utils.ParseTimestamp(req.DueAt, now.Location())
	if err != nil || !dueAt.After(now) {
		return CreateTaskInput{}, ErrInvalidDueAt
	}

	return CreateTaskInput{
		ApplicationID: req.ApplicationID,
		Type:          models.TaskType(req.TaskType),
		DueAt:         dueAt,
	}, nil
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService. now defaults to time.Now.
func NewTaskService(taskRepo repository.TaskRepository, now func() time.Time, logger *slog.Logger) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{
		taskRepo: taskRepo,
		now:      now,
		logger:   logger.With(slog.String("component", "task_service")),
	}
}

// Create parses req and creates the task.
func (s *TaskService) Create(ctx context.Context, req dto.CreateTaskRequest) (*models.Task, error) {
	input, err := ParseCreateTaskRequest(req, s.now())
	if err != nil {
		return nil, err
	}
	return s.CreateTask(ctx, input)
}

// CreateTask persists a validated task under its application's tenant
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	task := &models.Task{
		ApplicationID: input.ApplicationID,
		Type:          input.Type,
		DueAt:         input.DueAt,
		Status:        models.TaskStatusPending,
	}

	if err := s.taskRepo.CreateForApplication(ctx, task); err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			s.logger.Debug("application lookup failed",
				slog.String("application_id", input.ApplicationID),
				slog.String("error", err.Error()))
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("failed to create task",
			slog.String("application_id", input.ApplicationID),
			slog.String("error", err.Error()))
		return nil, apierrors.Internal(err)
	}

	s.logger.Info("task created",
		slog.String("task_id", task.ID),
		slog.String("application_id", task.ApplicationID),
		slog.String("tenant_id", task.TenantID),
		slog.String("type", string(task.Type)))
	return task, nil
}

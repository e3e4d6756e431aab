package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/followup-tasks/internal/dto"
	apierrors "github.com/yukikurage/followup-tasks/internal/errors"
	"github.com/yukikurage/followup-tasks/internal/logging"
	"github.com/yukikurage/followup-tasks/internal/models"
	"github.com/yukikurage/followup-tasks/internal/repository"
	"github.com/yukikurage/followup-tasks/internal/testutil"
)

var fixedNow = time.Date(2030, 4, 10, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// recordingRepo counts calls and stores tasks in memory.
type recordingRepo struct {
	tenants map[string]string
	inserts []models.Task
	lookups int
	err     error
}

func (r *recordingRepo) CreateForApplication(_ context.Context, task *models.Task) error {
	r.lookups++
	tenant, ok := r.tenants[task.ApplicationID]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	if r.err != nil {
		return r.err
	}
	task.ID = "task-1"
	task.TenantID = tenant
	r.inserts = append(r.inserts, *task)
	return nil
}

func (r *recordingRepo) ListDueBetween(context.Context, time.Time, time.Time) ([]models.Task, error) {
	return nil, errors.New("not used")
}

func (r *recordingRepo) MarkCompleted(context.Context, string) (int64, error) {
	return 0, errors.New("not used")
}

func newRecordingService() (*TaskService, *recordingRepo) {
	repo := &recordingRepo{tenants: map[string]string{"A1": "T1"}}
	return NewTaskService(repo, clock, logging.Discard()), repo
}

func TestParseCreateTaskRequest_Valid(t *testing.T) {
	input, err := ParseCreateTaskRequest(dto.CreateTaskRequest{
		ApplicationID: "A1",
		TaskType:      "review",
		DueAt:         "2030-04-11T09:00:00Z",
	}, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, "A1", input.ApplicationID)
	assert.Equal(t, models.TaskTypeReview, input.Type)
	assert.True(t, input.DueAt.Equal(time.Date(2030, 4, 11, 9, 0, 0, 0, time.UTC)))
}

func TestParseCreateTaskRequest_InvalidTaskType(t *testing.T) {
	for _, taskType := range []string{"", "sms", "CALL", "meeting"} {
		_, err := ParseCreateTaskRequest(dto.CreateTaskRequest{
			ApplicationID: "A1",
			TaskType:      taskType,
			DueAt:         "2030-04-11T09:00:00Z",
		}, fixedNow)
		assert.ErrorIs(t, err, ErrInvalidTaskType, taskType)
	}
}

func TestParseCreateTaskRequest_TaskTypeCheckedFirst(t *testing.T) {
	_, err := ParseCreateTaskRequest(dto.CreateTaskRequest{TaskType: "sms", DueAt: "garbage"}, fixedNow)
	assert.ErrorIs(t, err, ErrInvalidTaskType)
}

func TestParseCreateTaskRequest_InvalidDueAt(t *testing.T) {
	tests := map[string]string{
		"unparsable":   "next tuesday",
		"empty":        "",
		"past":         "2030-04-09T09:30:00Z",
		"exactly now":  fixedNow.Format(time.RFC3339Nano),
		"one ns prior": fixedNow.Add(-time.Nanosecond).Format(time.RFC3339Nano),
	}
	for name, dueAt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCreateTaskRequest(dto.CreateTaskRequest{
				ApplicationID: "A1",
				TaskType:      "call",
				DueAt:         dueAt,
			}, fixedNow)
			assert.ErrorIs(t, err, ErrInvalidDueAt)
			assert.Equal(t, apierrors.KindInvalidInput, apierrors.KindOf(err))
		})
	}
}

func TestParseCreateTaskRequest_OneNanosecondAhead(t *testing.T) {
	_, err := ParseCreateTaskRequest(dto.CreateTaskRequest{
		ApplicationID: "A1",
		TaskType:      "email",
		DueAt:         fixedNow.Add(time.Nanosecond).Format(time.RFC3339Nano),
	}, fixedNow)
	assert.NoError(t, err)
}

func TestTaskService_Create_Success(t *testing.T) {
	svc, repo := newRecordingService()

	task, err := svc.Create(context.Background(), dto.CreateTaskRequest{
		ApplicationID: "A1",
		TaskType:      "call",
		DueAt:         "2030-04-11T09:00:00Z",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	require.Len(t, repo.inserts, 1)
	assert.Equal(t, "T1", repo.inserts[0].TenantID)
	assert.Equal(t, models.TaskStatusPending, repo.inserts[0].Status)
	assert.Equal(t, 1, repo.lookups)
}

func TestTaskService_Create_ValidationFailuresDoNotTouchStore(t *testing.T) {
	svc, repo := newRecordingService()

	requests := []dto.CreateTaskRequest{
		{ApplicationID: "A1", TaskType: "sms", DueAt: "2030-04-11T09:00:00Z"},
		{ApplicationID: "A1", TaskType: "call", DueAt: "2030-04-09T09:00:00Z"},
		{ApplicationID: "A1", TaskType: "call", DueAt: "not a date"},
	}
	for _, req := range requests {
		_, err := svc.Create(context.Background(), req)
		assert.Equal(t, apierrors.KindInvalidInput, apierrors.KindOf(err))
	}

	assert.Zero(t, repo.lookups)
	assert.Empty(t, repo.inserts)
}

func TestTaskService_Create_ApplicationNotFound(t *testing.T) {
	svc, repo := newRecordingService()

	_, err := svc.Create(context.Background(), dto.CreateTaskRequest{
		ApplicationID: "missing",
		TaskType:      "call",
		DueAt:         "2030-04-11T09:00:00Z",
	})

	assert.ErrorIs(t, err, ErrApplicationNotFound)
	assert.Equal(t, apierrors.KindNotFound, apierrors.KindOf(err))
	assert.Empty(t, repo.inserts)
}

func TestTaskService_Create_InsertFailureIsInternal(t *testing.T) {
	svc, repo := newRecordingService()
	repo.err = errors.New("duplicate key")

	_, err := svc.Create(context.Background(), dto.CreateTaskRequest{
		ApplicationID: "A1",
		TaskType:      "email",
		DueAt:         "2030-04-11T09:00:00Z",
	})

	assert.Equal(t, apierrors.KindInternalError, apierrors.KindOf(err))
	assert.Equal(t, "duplicate key", apierrors.Message(err))
}

func TestTaskService_Create_PersistsWithSQLite(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	testutil.CreateApplication(t, db, "A1", "T1")
	svc := NewTaskService(repository.NewTaskRepository(db, time.Second), nil, logging.Discard())

	dueAt := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	task, err := svc.Create(context.Background(), dto.CreateTaskRequest{
		ApplicationID: "A1",
		TaskType:      "call",
		DueAt:         dueAt.Format(time.RFC3339),
	})
	require.NoError(t, err)

	var stored models.Task
	require.NoError(t, db.First(&stored, "id = ?", task.ID).Error)
	assert.Equal(t, "T1", stored.TenantID)
	assert.Equal(t, models.TaskStatusPending, stored.Status)
	assert.True(t, dueAt.Equal(stored.DueAt))
	assert.Equal(t, int64(1), testutil.CountTasks(t, db))
}

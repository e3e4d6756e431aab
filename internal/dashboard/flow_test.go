package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/followup-tasks/internal/dashboard"
	"github.com/yukikurage/followup-tasks/internal/handlers"
	"github.com/yukikurage/followup-tasks/internal/logging"
	"github.com/yukikurage/followup-tasks/internal/models"
	"github.com/yukikurage/followup-tasks/internal/repository"
	"github.com/yukikurage/followup-tasks/internal/services"
	"github.com/yukikurage/followup-tasks/internal/testutil"
	"gorm.io/gorm"
)

// FlowTestSuite creates tasks over HTTP and reads them back through the
// dashboard, both backed by the same database.
type FlowTestSuite struct {
	suite.Suite
	db     *gorm.DB
	repo   *repository.GormTaskRepository
	router *gin.Engine
	now    time.Time
}

func (s *FlowTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.db = testutil.NewSQLiteDB(s.T())
	s.repo = repository.NewTaskRepository(s.db, time.Second)
	s.now = time.Date(2030, 1, 15, 10, 0, 0, 0, time.UTC)

	svc := services.NewTaskService(s.repo, func() time.Time { return s.now }, logging.Discard())
	s.router = handlers.SetupRouter(handlers.RouterOptions{
		TaskHandler: handlers.NewTaskHandler(svc, logging.Discard()),
		Logger:      logging.Discard(),
	})

	testutil.CreateApplication(s.T(), s.db, "A1", "T1")
}

func (s *FlowTestSuite) create(taskType string, dueAt time.Time) *httptest.ResponseRecorder {
	body := `{"application_id":"A1","task_type":"` + taskType + `","due_at":"` + dueAt.Format(time.RFC3339) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *FlowTestSuite) TestCreateThenCompleteFromDashboard() {
	due := time.Date(2030, 1, 16, 9, 0, 0, 0, time.UTC)
	w := s.create("call", due)
	s.Require().Equal(http.StatusOK, w.Code)

	var created struct {
		Success bool   `json:"success"`
		TaskID  string `json:"task_id"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	s.True(created.Success)

	tomorrow := func() time.Time { return time.Date(2030, 1, 16, 8, 0, 0, 0, time.UTC) }
	d := dashboard.New(s.repo, tomorrow, logging.Discard())
	d.Load(context.Background())

	s.Require().Len(d.Tasks(), 1)
	task := d.Tasks()[0]
	s.Equal(created.TaskID, task.ID)
	s.Equal("A1", task.ApplicationID)
	s.Equal(models.TaskTypeCall, task.Type)
	s.Equal(models.TaskStatusPending, task.Status)

	rendered := dashboard.RenderPlain(d, time.UTC)
	s.Contains(rendered, "Call")
	s.Contains(rendered, "09:00")

	s.Require().NoError(d.Complete(context.Background(), task.ID))
	s.Empty(d.Tasks())
	s.True(d.Empty())
	s.Contains(dashboard.RenderPlain(d, time.UTC), dashboard.EmptyText)

	stored := testutil.FindTask(s.T(), s.db, task.ID)
	s.Equal(models.TaskStatusCompleted, stored.Status)
	s.Equal("T1", stored.TenantID)
}

func (s *FlowTestSuite) TestTaskOutsideTodayIsHidden() {
	s.Require().Equal(http.StatusOK, s.create("email", time.Date(2030, 1, 17, 9, 0, 0, 0, time.UTC)).Code)

	d := dashboard.New(s.repo, func() time.Time { return time.Date(2030, 1, 16, 8, 0, 0, 0, time.UTC) }, logging.Discard())
	d.Load(context.Background())

	s.True(d.Empty())
}

func (s *FlowTestSuite) TestRejectedRequestsCreateNothing() {
	s.Equal(http.StatusBadRequest, s.create("sms", s.now.Add(24*time.Hour)).Code)
	s.Equal(http.StatusBadRequest, s.create("call", s.now.Add(-24*time.Hour)).Code)

	s.Equal(int64(0), testutil.CountTasks(s.T(), s.db))
}

func TestFlowTestSuite(t *testing.T) {
	suite.Run(t, new(FlowTestSuite))
}

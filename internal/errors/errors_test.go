package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(KindInvalidInput))
	assert.Equal(t, http.StatusBadRequest, StatusCode(KindNotFound))
	assert.Equal(t, http.StatusUnauthorized, StatusCode(KindUnauthorized))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(KindInternalError))
	assert.Equal(t, http.StatusInternalServerError, StatusCode("SOMETHING_ELSE"))
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("create: %w", NotFound("Application not found"))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternalError, KindOf(stderrors.New("boom")))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Invalid task_type", Message(InvalidInput("Invalid task_type")))
	assert.Equal(t, "disk full", Message(Internal(stderrors.New("disk full"))))
	assert.Equal(t, "Internal Server Error", Message(Internal(nil)))
	assert.Equal(t, "Internal Server Error", Message(Internal(stderrors.New(""))))
	assert.Equal(t, "plain", Message(stderrors.New("plain")))
}

func TestIs(t *testing.T) {
	sentinel := InvalidInput("Invalid task_type")
	err := fmt.Errorf("parse: %w", sentinel)

	assert.True(t, stderrors.Is(err, sentinel))
	assert.True(t, stderrors.Is(err, New(KindInvalidInput, "")))
	assert.False(t, stderrors.Is(err, New(KindNotFound, "")))
	assert.False(t, stderrors.Is(err, InvalidInput("other")))
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := Wrap(KindInternalError, "", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "connection reset", err.Error())
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"invalid input", InvalidInput("Invalid task_type"), http.StatusBadRequest, "Invalid task_type"},
		{"not found", NotFound("Application not found"), http.StatusBadRequest, "Application not found"},
		{"unauthorized", Unauthenticated("Invalid API key"), http.StatusUnauthorized, "Invalid API key"},
		{"internal", Internal(stderrors.New("insert failed")), http.StatusInternalServerError, "insert failed"},
		{"unknown", stderrors.New("whatever"), http.StatusInternalServerError, "whatever"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Respond(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, map[string]string{"error": tt.body}, body)
		})
	}
}

func TestResponders_DefaultMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		respond func(*gin.Context, string)
		status  int
		body    string
	}{
		{"bad request", BadRequest, http.StatusBadRequest, "Invalid request"},
		{"unauthorized", Unauthorized, http.StatusUnauthorized, "Authentication required"},
		{"internal", InternalError, http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.respond(c, "")

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, `{"error":"`+tt.body+`"}`, w.Body.String())
		})
	}
}

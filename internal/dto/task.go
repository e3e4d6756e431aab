package dto

import (
	"bytes"
	"encoding/json"
)

// CreateTaskRequest is the raw JSON body of a task creation call. Fields
// stay untyped strings here; services.ParseCreateTaskRequest turns them into
// a validated input.
type CreateTaskRequest struct {
	ApplicationID string `json:"application_id"`
	TaskType      string `json:"task_type" validate:"task_type"`
	DueAt         string `json:"due_at"`
}

// UnmarshalJSON accepts any JSON value for each field. Strings are taken
// as-is, null or a missing field becomes "", and other values keep their
// JSON text, so a number sent as task_type fails as an invalid type rather
// than as a malformed body.
func (r *CreateTaskRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		ApplicationID json.RawMessage `json:"application_id"`
		TaskType      json.RawMessage `json:"task_type"`
		DueAt         json.RawMessage `json:"due_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.ApplicationID = looseString(raw.ApplicationID)
	r.TaskType = looseString(raw.TaskType)
	r.DueAt = looseString(raw.DueAt)
	return nil
}

func looseString(raw json.RawMessage) string {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// CreateTaskResponse is returned on success.
type CreateTaskResponse struct {
	Success bool   `json:"success"`
	TaskID  string `json:"task_id"`
}

// NewCreateTaskResponse builds the success payload for a created task.
func NewCreateTaskResponse(taskID string) CreateTaskResponse {
	return CreateTaskResponse{Success: true, TaskID: taskID}
}

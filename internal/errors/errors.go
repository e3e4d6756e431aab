package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error kinds
const (
	// Validation errors
	KindInvalidInput = "INVALID_INPUT"

	// Resource errors
	KindNotFound = "NOT_FOUND"

	// Authentication errors
	KindUnauthorized = "UNAUTHORIZED"

	// Service errors
	KindInternalError = "INTERNAL_ERROR"

	// Dashboard errors
	KindUpdateFailed = "UPDATE_FAILED"
	KindLoadFailed   = "LOAD_FAILED"
)

const defaultInternalMessage = "Internal Server Error"

// APIError is an error carrying a kind and the message shown to callers.
type APIError struct {
	Kind    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is matches another *APIError of the same kind, so sentinels built with New
// can be compared with errors.Is.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Message == "" || t.Message == e.Message)
}

// New creates a new APIError
func New(kind, message string) *APIError {
	return &APIError{Kind: kind, Message: message}
}

// Wrap creates an APIError around an underlying cause.
func Wrap(kind, message string, err error) *APIError {
	return &APIError{Kind: kind, Message: message, Err: err}
}

func InvalidInput(message string) *APIError {
	return New(KindInvalidInput, message)
}

func NotFound(message string) *APIError {
	return New(KindNotFound, message)
}

func Unauthenticated(message string) *APIError {
	return New(KindUnauthorized, message)
}

func Internal(err error) *APIError {
	return Wrap(KindInternalError, "", err)
}

// KindOf returns the kind of err, or KindInternalError for anything that is
// not an APIError.
func KindOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindInternalError
}

// StatusCode maps a kind to its HTTP status. NotFound shares 400 with
// InvalidInput on the task creation endpoint.
func StatusCode(kind string) int {
	switch kind {
	case KindInvalidInput, KindNotFound:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-facing text for err. Internal errors pass the
// underlying message through when there is one.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Err != nil && apiErr.Err.Error() != "" {
			return apiErr.Err.Error()
		}
		return defaultInternalMessage
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return defaultInternalMessage
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// Respond converts err into a status code and a {"error": ...} body.
func Respond(c *gin.Context, err error) {
	message := Message(err)
	switch StatusCode(KindOf(err)) {
	case http.StatusBadRequest:
		BadRequest(c, message)
	case http.StatusUnauthorized:
		Unauthorized(c, message)
	default:
		InternalError(c, message)
	}
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, message)
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = defaultInternalMessage
	}
	RespondWithError(c, http.StatusInternalServerError, message)
}

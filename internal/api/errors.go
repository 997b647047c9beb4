package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/roach88/taskstore/internal/store"
)

// Kind categorizes API errors.
type Kind string

const (
	// KindNotFound indicates the requested task does not exist.
	KindNotFound Kind = "NOT_FOUND"

	// KindValidation indicates a request body that could not be decoded.
	KindValidation Kind = "VALIDATION"

	// KindUpstream indicates the dog image API could not be reached or
	// returned something unusable.
	KindUpstream Kind = "UPSTREAM"

	// KindInternal indicates an unexpected failure.
	KindInternal Kind = "INTERNAL"
)

// Error is an error with a client-facing message.
//
// Message is what the response body carries; Err is the underlying cause
// and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound creates a KindNotFound error.
func NotFound(message string, err error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: err}
}

// Validation creates a KindValidation error.
func Validation(message string, err error) *Error {
	return &Error{Kind: KindValidation, Message: message, Err: err}
}

// Upstream creates a KindUpstream error.
func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// StatusFor maps an error to the HTTP status the API answers with.
//
// An *Error anywhere in the chain decides by its Kind. Otherwise
// store.ErrNotFound is 404, a cancelled or expired context is 503, and
// everything else is 500.
func StatusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case KindNotFound:
			return http.StatusNotFound
		case KindValidation:
			return http.StatusBadRequest
		default:
			return http.StatusInternalServerError
		}
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// messageFor returns the client-facing message for err.
func messageFor(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, store.ErrNotFound) {
		return "Task not found"
	}
	return http.StatusText(StatusFor(err))
}

// writeError is the single place error responses are produced.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.LogAttrs(r.Context(), level, "request failed",
		slog.String("request_id", RequestIDFrom(r.Context())),
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)

	writeJSON(w, status, errorBody{Error: messageFor(err)})
}

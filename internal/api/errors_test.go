package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/taskstore/internal/store"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found kind", NotFound("Task not found", nil), http.StatusNotFound},
		{"validation kind", Validation("Invalid request body", errors.New("bad json")), http.StatusBadRequest},
		{"upstream kind", Upstream("Failed to fetch dog image", context.DeadlineExceeded), http.StatusInternalServerError},
		{"internal kind", &Error{Kind: KindInternal, Message: "x"}, http.StatusInternalServerError},
		{"wrapped api error", fmt.Errorf("handler: %w", Validation("x", nil)), http.StatusBadRequest},
		{"store not found", fmt.Errorf("get task 9: %w", store.ErrNotFound), http.StatusNotFound},
		{"cancelled", fmt.Errorf("list tasks: %w", context.Canceled), http.StatusServiceUnavailable},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestMessageFor(t *testing.T) {
	assert.Equal(t, "ID not found", messageFor(NotFound("ID not found", store.ErrNotFound)))
	assert.Equal(t, "Task not found", messageFor(fmt.Errorf("get: %w", store.ErrNotFound)))
	assert.Equal(t, "Service Unavailable", messageFor(context.Canceled))
	assert.Equal(t, "Internal Server Error", messageFor(errors.New("boom")))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream("Failed to fetch dog image", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "UPSTREAM: Failed to fetch dog image: connection refused", err.Error())
	assert.Equal(t, "NOT_FOUND: Not found", NotFound("Not found", nil).Error())
}

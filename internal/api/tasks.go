package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/roach88/taskstore/internal/store"
)

const (
	msgTaskNotFound = "Task not found"
	msgIDNotFound   = "ID not found"
	msgInvalidBody  = "Invalid request body"
)

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, NotFound(msgTaskNotFound, nil))
		return
	}

	task, err := s.tasks.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, notFoundAs(err, msgTaskNotFound))
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	body, err := decodeTaskBody(w, r)
	if err != nil {
		s.writeError(w, r, Validation(msgInvalidBody, err))
		return
	}

	// A missing text is stored as "", like an explicit empty string.
	var text string
	if body.Text != nil {
		text = *body.Text
	}

	task, err := s.tasks.Create(r.Context(), text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/tasks/%d", task.ID))
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, NotFound(msgIDNotFound, nil))
		return
	}

	body, err := decodeTaskBody(w, r)
	if err != nil {
		s.writeError(w, r, Validation(msgInvalidBody, err))
		return
	}

	task, err := s.tasks.Update(r.Context(), id, store.Patch{
		Text:      body.Text,
		Completed: body.Completed,
	})
	if err != nil {
		s.writeError(w, r, notFoundAs(err, msgIDNotFound))
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if ok {
		if _, err := s.tasks.Delete(r.Context(), id); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path value. ok is false for anything that is not
// a base-10 int64; such ids name no task.
func pathID(r *http.Request) (id int64, ok bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// notFoundAs gives store.ErrNotFound the route's own message.
func notFoundAs(err error, message string) error {
	if errors.Is(err, store.ErrNotFound) {
		return NotFound(message, err)
	}
	return err
}

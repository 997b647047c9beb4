package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/roach88/taskstore/internal/store"
)

// TaskStore is the set of task operations the handlers need.
// *store.Store satisfies it.
type TaskStore interface {
	List(ctx context.Context) ([]store.Task, error)
	Get(ctx context.Context, id int64) (store.Task, error)
	Create(ctx context.Context, text string) (store.Task, error)
	Update(ctx context.Context, id int64, p store.Patch) (store.Task, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Server is the HTTP handler for the task API.
type Server struct {
	tasks   TaskStore
	dog     *DogClient
	logger  *slog.Logger
	origins []string
	ids     RequestIDGenerator

	handler http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for request and error logs.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithDogClient sets the upstream dog image client.
func WithDogClient(dog *DogClient) Option {
	return func(s *Server) {
		s.dog = dog
	}
}

// WithAllowedOrigins enables CORS for the given origins. "*" allows any.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// WithRequestIDGenerator overrides the request id generator (for testing).
// Defaults to UUIDv7Generator.
func WithRequestIDGenerator(gen RequestIDGenerator) Option {
	return func(s *Server) {
		s.ids = gen
	}
}

// NewServer creates the API handler over tasks.
func NewServer(tasks TaskStore, opts ...Option) *Server {
	s := &Server{
		tasks:  tasks,
		dog:    NewDogClient(DefaultDogURL, DefaultDogTimeout),
		logger: slog.Default(),
		ids:    UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.handler = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleHello)
	mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	mux.HandleFunc("POST /api/tasks", s.handleCreateTask)
	mux.HandleFunc("GET /api/tasks/{id}", s.handleGetTask)
	mux.HandleFunc("PUT /api/tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)
	mux.HandleFunc("GET /api/dog", s.handleDog)

	// Catch-all: unknown paths and unsupported methods on known paths.
	mux.HandleFunc("/", s.handleNotFound)

	var h http.Handler = mux
	h = s.cors(h)
	h = s.recoverPanics(h)
	h = s.logRequests(h)
	h = s.assignRequestID(h)
	return h
}

func (s *Server) handleHello(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello World!"))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, NotFound("Not found", nil))
}

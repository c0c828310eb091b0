// Package fakeserver is a local implementation of the Lunatask task API.
// It backs the SDK and CLI tests and the `luna mock` command. Tasks live in
// memory unless a SQLite store is supplied.
package fakeserver

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lunatask-go/lunatask/pkg/lunatask"
)

// Request is one request received by the server.
type Request struct {
	Method string
	Path   string
	Query  string
}

// Server holds the task store and the request log.
type Server struct {
	token  string
	logger *log.Logger
	now    func() time.Time
	newID  func() string
	store  Store

	// writes serializes read-modify-write cycles on the store.
	writes sync.Mutex

	mu       sync.Mutex
	requests []Request
	failWith int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger requests are logged to. Nil disables logging.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithClock replaces the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithStore replaces the in-memory store.
func WithStore(store Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// New creates a server that accepts only the given access token.
func New(token string, opts ...Option) *Server {
	s := &Server{
		token: token,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = NewMemoryStore()
	}
	return s
}

// Close closes the underlying store.
func (s *Server) Close() error {
	return s.store.Close()
}

// Handler returns the router serving the API under /v1.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery)
	if s.logger != nil {
		r.Use(Logging(s.logger))
	}
	r.Use(s.record)
	r.Use(BearerAuth(s.token))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/ping", s.ping)

		r.Group(func(r chi.Router) {
			r.Use(s.injectFailure)

			r.Get("/tasks", s.listTasks)
			r.Post("/tasks", s.createTask)
			r.Get("/tasks/{id}", s.getTask)
			r.Put("/tasks/{id}", s.updateTask)
			r.Delete("/tasks/{id}", s.deleteTask)
		})
	})

	return r
}

// FailWith makes every /tasks route answer with status until it is called
// again with 0.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = status
}

// Requests returns a copy of the request log.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Seed stores tasks as-is, keeping their order. Tasks without an ID get one.
func (s *Server) Seed(tasks ...lunatask.Task) error {
	s.writes.Lock()
	defer s.writes.Unlock()
	for _, t := range tasks {
		if t.ID == "" {
			t.ID = s.newID()
		}
		if err := s.store.Put(context.Background(), t); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

// record appends every request to the log.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status := s.failWith
		s.mu.Unlock()
		if status != 0 {
			writeMessage(w, status, http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

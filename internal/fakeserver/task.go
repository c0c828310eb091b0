package fakeserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lunatask-go/lunatask/pkg/lunatask"
)

type tasksEnvelope struct {
	Tasks []lunatask.Task `json:"tasks"`
}

type taskEnvelope struct {
	Task lunatask.Task `json:"task"`
}

// listTasks handles GET /tasks.
func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	sourceID := r.URL.Query().Get("source_id")

	all, err := s.store.List(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}

	tasks := make([]lunatask.Task, 0, len(all))
	for i := range all {
		if matchesSource(&all[i], source, sourceID) {
			tasks = append(tasks, all[i])
		}
	}

	writeJSON(w, http.StatusOK, tasksEnvelope{Tasks: tasks})
}

// createTask handles POST /tasks.
func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req lunatask.CreateTaskParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.AreaID == "" {
		writeMessage(w, http.StatusUnprocessableEntity, "area_id is required")
		return
	}

	now := s.timestamp()
	t := lunatask.Task{
		ID:          s.newID(),
		AreaID:      req.AreaID,
		GoalID:      req.GoalID,
		Status:      lunatask.StatusLater,
		Estimate:    req.Estimate,
		Priority:    lunatask.PriorityNormal,
		Motivation:  lunatask.MotivationUnknown,
		Eisenhower:  lunatask.EisenhowerUncategorized,
		Sources:     []lunatask.ExternalSource{},
		ScheduledOn: req.ScheduledOn,
		CompletedAt: req.CompletedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.Motivation != nil {
		t.Motivation = *req.Motivation
	}
	if req.Eisenhower != nil {
		t.Eisenhower = *req.Eisenhower
	}
	if req.Source != nil && *req.Source != "" {
		src := lunatask.ExternalSource{Source: *req.Source}
		if req.SourceID != nil {
			src.SourceID = *req.SourceID
		}
		t.Sources = append(t.Sources, src)
	}
	if t.Status == lunatask.StatusCompleted && t.CompletedAt == nil {
		t.CompletedAt = &now
	}

	s.writes.Lock()
	err := s.store.Put(r.Context(), t)
	s.writes.Unlock()
	if err != nil {
		s.storeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, taskEnvelope{Task: t})
}

// getTask handles GET /tasks/{id}.
func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, taskEnvelope{Task: *t})
}

// updateTask handles PUT /tasks/{id}. Only fields present in the body change.
func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req lunatask.UpdateTaskParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.AreaID != nil && *req.AreaID == "" {
		writeMessage(w, http.StatusUnprocessableEntity, "area_id cannot be empty")
		return
	}

	s.writes.Lock()
	defer s.writes.Unlock()

	t, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.storeError(w, err)
		return
	}

	now := s.timestamp()
	applyUpdate(t, req, now)
	t.UpdatedAt = now

	if err := s.store.Put(r.Context(), *t); err != nil {
		s.storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, taskEnvelope{Task: *t})
}

// deleteTask handles DELETE /tasks/{id}. The response carries the task as it
// was at deletion, with deleted_at set.
func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.writes.Lock()
	defer s.writes.Unlock()

	t, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.storeError(w, err)
		return
	}

	now := s.timestamp()
	t.DeletedAt = &now
	t.UpdatedAt = now

	writeJSON(w, http.StatusOK, taskEnvelope{Task: *t})
}

// storeError maps a store failure to a response.
func (s *Server) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}
	if s.logger != nil {
		s.logger.Printf("store error: %v", err)
	}
	writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
}

// applyUpdate copies the set fields of req onto t.
func applyUpdate(t *lunatask.Task, req lunatask.UpdateTaskParams, now string) {
	if req.AreaID != nil {
		t.AreaID = *req.AreaID
	}
	if req.GoalID != nil {
		t.GoalID = req.GoalID
	}
	if req.Estimate != nil {
		t.Estimate = req.Estimate
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.Motivation != nil {
		t.Motivation = *req.Motivation
	}
	if req.Eisenhower != nil {
		t.Eisenhower = *req.Eisenhower
	}
	if req.ScheduledOn != nil {
		t.ScheduledOn = req.ScheduledOn
	}
	if req.CompletedAt != nil {
		t.CompletedAt = req.CompletedAt
	}
	if req.Status != nil && *req.Status != t.Status {
		prev := t.Status
		t.PreviousStatus = &prev
		t.Status = *req.Status
		switch {
		case t.Status == lunatask.StatusCompleted && t.CompletedAt == nil:
			t.CompletedAt = &now
		case t.Status != lunatask.StatusCompleted && req.CompletedAt == nil:
			t.CompletedAt = nil
		}
	}
}

// matchesSource reports whether any of t's sources satisfies the filter.
// An empty filter field matches anything.
func matchesSource(t *lunatask.Task, source, sourceID string) bool {
	if source == "" && sourceID == "" {
		return true
	}
	for _, src := range t.Sources {
		if (source == "" || src.Source == source) && (sourceID == "" || src.SourceID == sourceID) {
			return true
		}
	}
	return false
}

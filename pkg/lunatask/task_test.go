package lunatask

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListTasks_NoFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks" {
			t.Errorf("expected path /tasks, got %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("expected no query, got %q", r.URL.RawQuery)
		}
		if r.Header.Get("Authorization") != "bearer test-token" {
			t.Errorf("expected bearer auth header, got %q", r.Header.Get("Authorization"))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tasksResponse{Tasks: []Task{
			{ID: "t3", AreaID: "A"},
			{ID: "t1", AreaID: "A"},
			{ID: "t2", AreaID: "B"},
		}})
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)
	tasks, err := client.ListTasks(context.Background(), ListTasksParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	for i, want := range []string{"t3", "t1", "t2"} {
		if tasks[i].ID != want {
			t.Errorf("task %d: expected %s, got %s", i, want, tasks[i].ID)
		}
	}
}

func TestListTasks_Query(t *testing.T) {
	tests := []struct {
		name   string
		params ListTasksParams
		want   map[string]string
	}{
		{
			name:   "source and source id",
			params: ListTasksParams{Source: "todoist", SourceID: "123"},
			want:   map[string]string{"source": "todoist", "source_id": "123"},
		},
		{
			name:   "source only",
			params: ListTasksParams{Source: "todoist"},
			want:   map[string]string{"source": "todoist"},
		},
		{
			name:   "source id only",
			params: ListTasksParams{SourceID: "123"},
			want:   map[string]string{"source_id": "123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				query := r.URL.Query()
				if len(query) != len(tt.want) {
					t.Errorf("expected %d query params, got %v", len(tt.want), query)
				}
				for k, v := range tt.want {
					if query.Get(k) != v {
						t.Errorf("expected %s=%s, got %q", k, v, query.Get(k))
					}
				}
				w.Write([]byte(`{"tasks":[]}`))
			}))
			defer server.Close()

			client, _ := newTestClient(t, server)
			tasks, err := client.ListTasks(context.Background(), tt.params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tasks == nil || len(tasks) != 0 {
				t.Errorf("expected empty non-nil slice, got %v", tasks)
			}
		})
	}
}

func TestListTasks_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message":"Too Many Requests"}`))
	}))
	defer server.Close()

	client, logs := newTestClient(t, server)
	_, err := client.ListTasks(context.Background(), ListTasksParams{})
	if !IsRateLimited(err) {
		t.Errorf("expected rate limited error, got %v", err)
	}
	if !strings.Contains(logs.String(), "list tasks failed") {
		t.Errorf("expected failure to be logged, got %q", logs.String())
	}
}

func TestGetTask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/abc" {
			t.Errorf("expected path /tasks/abc, got %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}

		w.Write([]byte(`{"task":{
			"id":"abc","area_id":"A1","goal_id":null,"status":"next",
			"previous_status":"later","estimate":25,"priority":1,
			"motivation":"must","eisenhower":3,
			"sources":[{"source":"github","source_id":"7"}],
			"scheduled_on":"2024-03-02","completed_at":null,
			"created_at":"2024-03-01T09:00:00Z","updated_at":"2024-03-01T10:00:00Z",
			"deleted_at":null}}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)
	task, err := client.GetTask(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if task.ID != "abc" || task.AreaID != "A1" {
		t.Errorf("unexpected identity: %+v", task)
	}
	if task.GoalID != nil {
		t.Errorf("expected nil goal, got %v", *task.GoalID)
	}
	if task.Status != StatusNext {
		t.Errorf("expected status next, got %s", task.Status)
	}
	if task.PreviousStatus == nil || *task.PreviousStatus != StatusLater {
		t.Errorf("expected previous status later, got %v", task.PreviousStatus)
	}
	if task.Estimate == nil || *task.Estimate != 25 {
		t.Errorf("expected estimate 25, got %v", task.Estimate)
	}
	if task.Priority != PriorityHigh || task.Motivation != MotivationMust || task.Eisenhower != EisenhowerImportantNotUrgent {
		t.Errorf("unexpected classification: %d %s %d", task.Priority, task.Motivation, task.Eisenhower)
	}
	if len(task.Sources) != 1 || task.Sources[0] != (ExternalSource{Source: "github", SourceID: "7"}) {
		t.Errorf("unexpected sources: %+v", task.Sources)
	}
	if task.ScheduledOn == nil || *task.ScheduledOn != "2024-03-02" {
		t.Errorf("unexpected scheduled_on: %v", task.ScheduledOn)
	}
	if task.CreatedAt != "2024-03-01T09:00:00Z" || task.UpdatedAt != "2024-03-01T10:00:00Z" {
		t.Errorf("unexpected timestamps: %s %s", task.CreatedAt, task.UpdatedAt)
	}
	if task.DeletedAt != nil || task.CompletedAt != nil {
		t.Error("expected nil completed_at and deleted_at")
	}
}

func TestGetTask_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	client, logs := newTestClient(t, server)
	task, err := client.GetTask(context.Background(), "abc")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if task != nil {
		t.Errorf("expected nil task, got %+v", task)
	}
	if !IsNotFound(err) {
		t.Errorf("expected not found error, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Method != http.MethodGet || apiErr.Path != "/tasks/abc" || apiErr.Message != "Not Found" {
		t.Errorf("unexpected error details: %+v", apiErr)
	}
	if !strings.Contains(logs.String(), "get task failed") {
		t.Errorf("expected failure to be logged, got %q", logs.String())
	}
}

func TestGetTask_EscapesID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/tasks/a%2Fb" {
			t.Errorf("expected escaped path /tasks/a%%2Fb, got %s", r.URL.EscapedPath())
		}
		w.Write([]byte(`{"task":{"id":"a/b"}}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)
	if _, err := client.GetTask(context.Background(), "a/b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetTask_MissingEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)
	_, err := client.GetTask(context.Background(), "abc")
	if !errors.Is(err, ErrMissingTask) {
		t.Errorf("expected ErrMissingTask, got %v", err)
	}
}

func TestCreateTask_Minimal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks" {
			t.Errorf("expected path /tasks, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}

		raw, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("failed to read body: %v", err)
		}
		if strings.TrimSpace(string(raw)) != `{"area_id":"A1"}` {
			t.Errorf("expected minimal body, got %s", raw)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(taskResponse{Task: &Task{
			ID:        "new-1",
			AreaID:    "A1",
			Status:    StatusLater,
			CreatedAt: "2024-03-01T09:00:00Z",
			UpdatedAt: "2024-03-01T09:00:00Z",
		}})
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)
	task, err := client.CreateTask(context.Background(), CreateTaskParams{AreaID: "A1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if task.ID != "new-1" {
		t.Errorf("expected server-assigned id new-1, got %s", task.ID)
	}
	if task.CreatedAt != "2024-03-01T09:00:00Z" || task.UpdatedAt != "2024-03-01T09:00:00Z" {
		t.Errorf("unexpected timestamps: %s %s", task.CreatedAt, task.UpdatedAt)
	}
}

func TestCreateTask_AllFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}

		want := map[string]interface{}{
			"area_id":      "A1",
			"goal_id":      "G1",
			"name":         "Write report",
			"note":         "quarterly",
			"status":       "next",
			"motivation":   "should",
			"eisenhower":   float64(0),
			"estimate":     float64(30),
			"priority":     float64(-1),
			"scheduled_on": "2024-03-04",
			"source":       "github",
			"source_id":    "99",
		}
		if len(body) != len(want) {
			t.Errorf("expected %d fields, got %v", len(want), body)
		}
		for k, v := range want {
			if body[k] != v {
				t.Errorf("field %s: expected %v, got %v", k, v, body[k])
			}
		}

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"task":{"id":"new-2","area_id":"A1"}}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)
	_, err := client.CreateTask(context.Background(), CreateTaskParams{
		AreaID:      "A1",
		GoalID:      Ptr("G1"),
		Name:        Ptr("Write report"),
		Note:        Ptr("quarterly"),
		Status:      Ptr(StatusNext),
		Motivation:  Ptr(MotivationShould),
		Eisenhower:  Ptr(EisenhowerUncategorized),
		Estimate:    Ptr(30),
		Priority:    Ptr(PriorityLow),
		ScheduledOn: Ptr("2024-03-04"),
		Source:      Ptr("github"),
		SourceID:    Ptr("99"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateTask_ValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"area_id is required"}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)
	_, err := client.CreateTask(context.Background(), CreateTaskParams{})
	if !IsValidationFailed(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "area_id is required") {
		t.Errorf("expected server message in error, got %q", err.Error())
	}
}

func TestUpdateTask(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/tasks/abc" {
			t.Errorf("expected path /tasks/abc, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}

		var req UpdateTaskParams
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if req.Status == nil || *req.Status != StatusCompleted {
			t.Errorf("expected status completed, got %v", req.Status)
		}
		if req.Name == nil || *req.Name != "Renamed" {
			t.Errorf("expected name Renamed, got %v", req.Name)
		}
		if req.AreaID != nil || req.Priority != nil {
			t.Error("expected unset fields to be omitted")
		}

		json.NewEncoder(w).Encode(taskResponse{Task: &Task{
			ID:          "abc",
			AreaID:      "A1",
			Status:      StatusCompleted,
			CompletedAt: Ptr("2024-03-01T11:00:00Z"),
		}})
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)
	task, err := client.UpdateTask(context.Background(), "abc", UpdateTaskParams{
		Status: Ptr(StatusCompleted),
		Name:   Ptr("Renamed"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if requests != 1 {
		t.Errorf("expected exactly 1 request, got %d", requests)
	}
	if task.Status != StatusCompleted {
		t.Errorf("expected status completed, got %s", task.Status)
	}
	if task.CompletedAt == nil {
		t.Error("expected completed_at from server")
	}
}

func TestDeleteTask(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/tasks/abc" {
			t.Errorf("expected path /tasks/abc, got %s", r.URL.Path)
		}
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "bearer test-token" {
			t.Errorf("expected bearer auth header, got %q", r.Header.Get("Authorization"))
		}

		w.Write([]byte(`{"task":{"id":"abc","area_id":"A1","deleted_at":"2024-03-01T12:00:00Z"}}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)
	task, err := client.DeleteTask(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if requests != 1 {
		t.Errorf("expected exactly 1 request, got %d", requests)
	}
	if task.DeletedAt == nil || *task.DeletedAt != "2024-03-01T12:00:00Z" {
		t.Errorf("expected deleted_at from server, got %v", task.DeletedAt)
	}
}

func TestWriteOperations_PropagateServerError(t *testing.T) {
	tests := []struct {
		name string
		call func(*Client) (*Task, error)
		log  string
	}{
		{
			name: "update",
			call: func(c *Client) (*Task, error) {
				return c.UpdateTask(context.Background(), "abc", UpdateTaskParams{Note: Ptr("x")})
			},
			log: "update task failed",
		},
		{
			name: "delete",
			call: func(c *Client) (*Task, error) {
				return c.DeleteTask(context.Background(), "abc")
			},
			log: "delete task failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests++
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"message":"Internal Server Error"}`))
			}))
			defer server.Close()

			client, logs := newTestClient(t, server)
			task, err := tt.call(client)
			if task != nil {
				t.Errorf("expected nil task, got %+v", task)
			}
			if StatusCode(err) != http.StatusInternalServerError {
				t.Errorf("expected status 500, got %d (%v)", StatusCode(err), err)
			}
			if requests != 1 {
				t.Errorf("expected exactly 1 request (no retry), got %d", requests)
			}
			if !strings.Contains(logs.String(), tt.log) {
				t.Errorf("expected %q in logs, got %q", tt.log, logs.String())
			}
		})
	}
}

func TestTransportError_IsWrapped(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client, _ := newTestClient(t, server)
	server.Close()

	_, err := client.ListTasks(context.Background(), ListTasksParams{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if StatusCode(err) != 0 {
		t.Errorf("transport error should not carry a status, got %d", StatusCode(err))
	}
	if !strings.Contains(err.Error(), "list tasks request failed") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tasks":[]}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListTasks(ctx, ListTasksParams{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMalformedSuccessResponse(t *testing.T) {
	tests := []struct {
		name string
		call func(*Client) error
		op   string
	}{
		{
			name: "get",
			call: func(c *Client) error {
				_, err := c.GetTask(context.Background(), "abc")
				return err
			},
			op: "get task",
		},
		{
			name: "list",
			call: func(c *Client) error {
				_, err := c.ListTasks(context.Background(), ListTasksParams{})
				return err
			},
			op: "list tasks",
		},
		{
			name: "create",
			call: func(c *Client) error {
				_, err := c.CreateTask(context.Background(), CreateTaskParams{AreaID: "A1"})
				return err
			},
			op: "create task",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`not json`))
			}))
			defer server.Close()

			client, logs := newTestClient(t, server)
			err := tt.call(client)

			var syntaxErr *json.SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected wrapped JSON syntax error, got %v", err)
			}
			if !strings.Contains(err.Error(), "failed to decode "+tt.op+" response") {
				t.Errorf("unexpected error message: %v", err)
			}
			if !strings.Contains(logs.String(), tt.op+" failed") {
				t.Errorf("expected failure to be logged, got %q", logs.String())
			}
		})
	}
}

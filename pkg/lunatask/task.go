package lunatask

import (
	"context"
	"net/http"
	"net/url"
)

// ListTasks lists tasks, optionally filtered by source. Tasks come back in
// the order the server sends them.
func (c *Client) ListTasks(ctx context.Context, params ListTasksParams) ([]Task, error) {
	path := "/tasks"

	query := url.Values{}
	if params.Source != "" {
		query.Set("source", params.Source)
	}
	if params.SourceID != "" {
		query.Set("source_id", params.SourceID)
	}
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, c.fail("list tasks", err)
	}

	var body tasksResponse
	if err := c.do(req, "list tasks", &body); err != nil {
		return nil, c.fail("list tasks", err)
	}

	if body.Tasks == nil {
		body.Tasks = []Task{}
	}

	return body.Tasks, nil
}

// GetTask retrieves a task by ID. An unknown ID yields an error for which
// IsNotFound is true.
func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	req, err := c.newRequest(ctx, http.MethodGet, taskPath(id), nil)
	if err != nil {
		return nil, c.fail("get task", err)
	}

	return c.doTask(req, "get task")
}

// CreateTask creates a task and returns it as stored by the server,
// including its ID and timestamps.
func (c *Client) CreateTask(ctx context.Context, params CreateTaskParams) (*Task, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/tasks", params)
	if err != nil {
		return nil, c.fail("create task", err)
	}

	return c.doTask(req, "create task")
}

// UpdateTask sends params to the task and returns the server's updated copy.
func (c *Client) UpdateTask(ctx context.Context, id string, params UpdateTaskParams) (*Task, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPut, taskPath(id), params)
	if err != nil {
		return nil, c.fail("update task", err)
	}

	return c.doTask(req, "update task")
}

// DeleteTask deletes a task and returns the deleted task, whose DeletedAt is
// set by the server.
func (c *Client) DeleteTask(ctx context.Context, id string) (*Task, error) {
	req, err := c.newRequest(ctx, http.MethodDelete, taskPath(id), nil)
	if err != nil {
		return nil, c.fail("delete task", err)
	}

	return c.doTask(req, "delete task")
}

// doTask sends a request answered with a {"task": ...} envelope.
func (c *Client) doTask(req *http.Request, op string) (*Task, error) {
	var body taskResponse
	if err := c.do(req, op, &body); err != nil {
		return nil, c.fail(op, err)
	}

	if body.Task == nil {
		return nil, c.fail(op, ErrMissingTask)
	}

	return body.Task, nil
}

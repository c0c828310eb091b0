package lunatask

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Version is reported in the User-Agent header.
const Version = "0.1.0"

// maxErrorBody caps how much of an error response is kept on APIError.
const maxErrorBody = 64 << 10

// newRequest creates a new HTTP request with common headers.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain access token: %w", err)
	}
	if token == nil || token.AccessToken == "" {
		return nil, ErrNoAccessToken
	}

	req.Header.Set("Authorization", "bearer "+token.AccessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "lunatask-go/"+Version)

	return req, nil
}

// newJSONRequest creates a new HTTP request with JSON body.
func (c *Client) newJSONRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, &buf)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// do sends req and decodes a 2xx JSON response into out. Non-2xx responses
// come back as *APIError.
func (c *Client) do(req *http.Request, op string, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseErrorResponse(req, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}

	return nil
}

// fail logs a failed operation and hands the error back unchanged.
func (c *Client) fail(op string, err error) error {
	c.logger.Printf("%s failed: %v", op, err)
	return err
}

// taskPath returns the path of a single task.
func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}

// parseErrorResponse builds an APIError from a non-2xx response.
func parseErrorResponse(req *http.Request, resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("failed to read error response: %w", err)
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Method:     req.Method,
		Path:       req.URL.Path,
		Body:       body,
	}

	var msg apiErrorResponse
	if err := json.Unmarshal(body, &msg); err == nil {
		apiErr.Message = msg.Message
	}

	return apiErr
}

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"focusdo/internal/model"
)

const (
	defaultRetryDelay = 2 * time.Second
	dayFormat         = "2006-01-02"
)

// Client is the HTTP implementation of Store.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

type recordsResponse struct {
	Records []Record `json:"records"`
}

type statResponse struct {
	Count int `json:"count"`
}

type statRequest struct {
	Count int `json:"count"`
}

// NewClient builds a Store talking JSON to the record service at baseURL.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) FetchAll(ctx context.Context) ([]model.Task, error) {
	var resp recordsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/tasks", nil, &resp); err != nil {
		return nil, err
	}
	tasks := make([]model.Task, 0, len(resp.Records))
	for _, rec := range resp.Records {
		t, err := DecodeTask(rec)
		if err != nil {
			// One malformed record must not poison the whole fetch.
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (c *Client) Save(ctx context.Context, t model.Task) error {
	return c.do(ctx, http.MethodPut, "/v1/tasks/"+t.ID, EncodeTask(t), nil)
}

func (c *Client) Delete(ctx context.Context, t model.Task) error {
	return c.do(ctx, http.MethodDelete, "/v1/tasks/"+t.ID, nil, nil)
}

func (c *Client) FetchCategories(ctx context.Context) ([]model.Category, error) {
	var resp recordsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/categories", nil, &resp); err != nil {
		return nil, err
	}
	categories := make([]model.Category, 0, len(resp.Records))
	for _, rec := range resp.Records {
		cat, err := DecodeCategory(rec)
		if err != nil {
			continue
		}
		categories = append(categories, cat)
	}
	return categories, nil
}

func (c *Client) SaveCategory(ctx context.Context, cat model.Category) error {
	return c.do(ctx, http.MethodPut, "/v1/categories/"+cat.ID, EncodeCategory(cat), nil)
}

func (c *Client) DeleteCategory(ctx context.Context, cat model.Category) error {
	return c.do(ctx, http.MethodDelete, "/v1/categories/"+cat.ID, nil, nil)
}

func (c *Client) FetchDailyStat(ctx context.Context, day time.Time) (int, error) {
	var resp statResponse
	if err := c.do(ctx, http.MethodGet, "/v1/stats/daily/"+day.Format(dayFormat), nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *Client) SaveDailyStat(ctx context.Context, day time.Time, count int) error {
	return c.do(ctx, http.MethodPut, "/v1/stats/daily/"+day.Format(dayFormat), statRequest{Count: count}, nil)
}

func (c *Client) FetchFocusStat(ctx context.Context, day time.Time) (int, error) {
	var resp statResponse
	if err := c.do(ctx, http.MethodGet, "/v1/stats/focus/"+day.Format(dayFormat), nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *Client) SaveFocusStat(ctx context.Context, day time.Time, minutes int) error {
	return c.do(ctx, http.MethodPut, "/v1/stats/focus/"+day.Format(dayFormat), statRequest{Count: minutes}, nil)
}

// do issues one request, retrying exactly once after the server-suggested
// (or default) delay when the service is rate-limited or briefly down.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	retry, delay, err := c.once(ctx, method, path, body, out)
	if !retry {
		return err
	}

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return ctx.Err()
	}
	_, _, err = c.once(ctx, method, path, body, out)
	return err
}

func (c *Client) once(ctx context.Context, method, path string, body, out any) (retry bool, delay time.Duration, err error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return false, 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return false, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, 0, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable:
		return true, retryAfter(resp), fmt.Errorf("remote unavailable: %s", resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, 0, fmt.Errorf("remote %s %s: %s: %s", method, path, resp.Status, bytes.TrimSpace(msg))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, 0, fmt.Errorf("decode response: %w", err)
		}
	}
	return false, 0, nil
}

// retryAfter honors the server-suggested delay, falling back to a fixed
// default when the header is absent or unparsable.
func retryAfter(resp *http.Response) time.Duration {
	if raw := resp.Header.Get("Retry-After"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultRetryDelay
}

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/brk3/habit-tracker/internal/server"
	"github.com/brk3/habit-tracker/pkg/habit"
	"github.com/brk3/habit-tracker/pkg/versioninfo"
)

type Client struct {
	BaseURL   string
	AuthToken string
	HTTP      *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    http.DefaultClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(res.Body).Decode(&e) == nil && e.Error != "" {
			return fmt.Errorf("%s %s: %s: %s", method, path, res.Status, e.Error)
		}
		return fmt.Errorf("%s %s: %s", method, path, res.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) Snapshot(ctx context.Context) (habit.State, error) {
	var st habit.State
	err := c.do(ctx, http.MethodGet, "/habits", nil, &st)
	return st, err
}

func (c *Client) ListHabits(ctx context.Context) ([]habit.Habit, error) {
	st, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return st.Habits, nil
}

func (c *Client) Progress(ctx context.Context) (habit.Progress, error) {
	var p habit.Progress
	err := c.do(ctx, http.MethodGet, "/progress", nil, &p)
	return p, err
}

func (c *Client) Add(ctx context.Context, text string) (habit.State, error) {
	var st habit.State
	err := c.do(ctx, http.MethodPost, "/habits", server.AddHabitRequest{Text: text}, &st)
	return st, err
}

func (c *Client) Toggle(ctx context.Context, id string, done bool) (habit.State, error) {
	var st habit.State
	err := c.do(ctx, http.MethodPatch, "/habits/"+url.PathEscape(id), server.ToggleHabitRequest{Done: &done}, &st)
	return st, err
}

func (c *Client) Delete(ctx context.Context, id string) (habit.State, error) {
	var st habit.State
	err := c.do(ctx, http.MethodDelete, "/habits/"+url.PathEscape(id), nil, &st)
	return st, err
}

func (c *Client) ClearCompleted(ctx context.Context) (habit.State, error) {
	var st habit.State
	err := c.do(ctx, http.MethodPost, "/habits/clear-completed", nil, &st)
	return st, err
}

func (c *Client) ResetAll(ctx context.Context) (habit.State, error) {
	var st habit.State
	err := c.do(ctx, http.MethodDelete, "/habits", nil, &st)
	return st, err
}

func (c *Client) Version(ctx context.Context) (versioninfo.VersionInfo, error) {
	var v versioninfo.VersionInfo
	err := c.do(ctx, http.MethodGet, "/version", nil, &v)
	return v, err
}

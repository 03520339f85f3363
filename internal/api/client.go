// Package api is a client for the FinderGoal REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/findergoal/internal/common"
	"github.com/Veraticus/findergoal/internal/model"
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method     string
	Path       string
	Body       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client talks to the FinderGoal API with a bearer token.
type Client struct {
	httpClient *http.Client
	newID      func() string
	baseURL    string
	token      string
}

// NewClient creates a client for baseURL. token may be empty for
// unauthenticated calls; write operations then fail with
// common.ErrUnauthenticated.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		newID:      uuid.NewString,
	}, nil
}

// ListMatches returns the matches visible to the caller.
func (c *Client) ListMatches(ctx context.Context) ([]model.Match, error) {
	var matches []model.Match
	if err := c.do(ctx, http.MethodGet, "/matches", nil, nil, &matches); err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []model.Match{}
	}
	return matches, nil
}

// Me returns the profile of the token's owner.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	if c.token == "" {
		return model.User{}, common.ErrUnauthenticated
	}
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/me", nil, nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// CreateMatch submits a new match. Each call carries a fresh idempotency key
// so a retried request is not stored twice.
func (c *Client) CreateMatch(ctx context.Context, req model.MatchRequest) (model.Match, error) {
	if c.token == "" {
		return model.Match{}, common.ErrUnauthenticated
	}
	if strings.TrimSpace(req.Location) == "" {
		return model.Match{}, common.NewUserError("the match needs a location", nil)
	}
	if req.Players == nil {
		req.Players = []string{}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return model.Match{}, fmt.Errorf("failed to encode match: %w", err)
	}

	headers := map[string]string{"Idempotency-Key": c.newID()}
	var created model.Match
	if err := c.do(ctx, http.MethodPost, "/matches", bytes.NewReader(body), headers, &created); err != nil {
		return model.Match{}, err
	}
	return created, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s %s: %w", method, path, common.ErrUnauthenticated)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}

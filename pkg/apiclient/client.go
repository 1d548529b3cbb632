package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"

	"github.com/google/uuid"
)

// HeaderProvider supplies per-request headers, typically the authorization
// header derived from the current session. It must not block.
type HeaderProvider func() map[string]string

// Client talks to the transit backend over the fixed /v1 contract.
type Client struct {
	baseURL string
	http    *http.Client
	headers HeaderProvider
}

// New creates a client for the given configuration. The underlying HTTP
// client carries a cookie jar so the HTTP-only session cookie set by the
// login response is forwarded on refresh and logout.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrNoBaseURL
	}

	c := &Client{
		baseURL: cfg.BaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		c.http = &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		}
	}

	return c, nil
}

// Login exchanges credentials for an access token and user id.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", body, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

// Logout invalidates the session server-side. Callers treat failures as
// best-effort; the method still reports them so they can be logged.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
}

// Refresh exchanges the HTTP-only session cookie for a fresh access token.
func (c *Client) Refresh(ctx context.Context) (RefreshResult, error) {
	var result RefreshResult
	if err := c.do(ctx, http.MethodPost, "/v1/auth/refresh", nil, &result); err != nil {
		return RefreshResult{}, err
	}
	return result, nil
}

// GetProfile fetches the user's profile. Returns ErrNotFound when the
// backend reports the profile has not been created yet.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/v1/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile sends a partial update and returns the authoritative
// profile from the backend.
func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodPut, "/v1/profile", patch, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetStations fetches the live station-status feed. No authorization needed.
func (c *Client) GetStations(ctx context.Context) ([]Station, error) {
	var stations []Station
	if err := c.do(ctx, http.MethodGet, "/v1/data", nil, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
	if c.headers != nil {
		for k, v := range c.headers() {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: %s %s returned %d", ErrUnexpectedStatus, method, path, resp.StatusCode)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrDecodeFailed, err)
	}
	return nil
}

// Package api is the shared REST client every domain page goes through. It
// is the single chokepoint that attaches the bearer credential and
// classifies failures: a 401 anywhere tears the session down exactly once
// and routes the user to the login entry point, a 403 becomes a notice, and
// server or network trouble is reported as transient. Pages never carry
// their own 401 handling.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"payroll/client/session"
)

const defaultTimeout = 10 * time.Second

// Credentials is the slice of the session store the client needs: the token
// for outbound requests and the exactly-once invalidation path for 401s.
type Credentials interface {
	Token() string
	Invalidate() bool
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *envelopeError  `json:"error,omitempty"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Client struct {
	baseURL string
	http    *http.Client
	creds   Credentials

	onUnauthorized func()
	onForbidden    func(message string)
	onTransient    func(message string)
}

type Option func(*Client)

// WithHTTPClient swaps the underlying transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithUnauthorizedHandler is invoked after the session has been invalidated
// by a 401, once per invalidation pass. The shell uses it to redirect to the
// login entry point.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithForbiddenHandler surfaces 403 responses as a user notice.
func WithForbiddenHandler(fn func(message string)) Option {
	return func(c *Client) { c.onForbidden = fn }
}

// WithTransientHandler surfaces network and server failures as a non-fatal
// notice.
func WithTransientHandler(fn func(message string)) Option {
	return func(c *Client) { c.onTransient = fn }
}

func New(baseURL string, creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		creds:   creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticate implements session.Gateway: it exchanges credentials for a
// token and identity. Every failure mode is folded into a session.AuthError
// carrying a message fit for the login form.
func (c *Client) Authenticate(ctx context.Context, email, password string) (session.Identity, string, error) {
	payload := map[string]string{"email": email, "password": password}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return session.Identity{}, "", &session.AuthError{Message: "could not build login request"}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return session.Identity{}, "", &session.AuthError{Message: "could not reach the server, please try again"}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return session.Identity{}, "", &session.AuthError{Message: "unexpected response from the server"}
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		message := "invalid email or password"
		if env.Error != nil && env.Error.Message != "" {
			message = env.Error.Message
		}
		return session.Identity{}, "", &session.AuthError{Message: message}
	}

	var data struct {
		Token    string           `json:"token"`
		Identity session.Identity `json:"identity"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		return session.Identity{}, "", &session.AuthError{Message: "unexpected response from the server"}
	}
	return data.Identity, data.Token, nil
}

// Get issues an authenticated GET and decodes the envelope data into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// GetBytes fetches a raw authenticated resource, e.g. a payslip PDF.
func (c *Client) GetBytes(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.attachToken(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transient("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return io.ReadAll(resp.Body)
	}
	return nil, c.classify(resp.StatusCode, envelope{})
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.attachToken(req)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return c.transient("request failed", err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.classify(resp.StatusCode, env)
	}
	if decodeErr != nil {
		return c.transient("malformed response", decodeErr)
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return c.transient("malformed response", err)
		}
	}
	return nil
}

func (c *Client) attachToken(req *http.Request) {
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) classify(status int, env envelope) error {
	message := ""
	if env.Error != nil {
		message = env.Error.Message
	}

	switch {
	case status == http.StatusUnauthorized:
		// The invalidation path runs here so concurrent failing requests
		// collapse into a single teardown and redirect.
		if c.creds.Invalidate() && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &UnauthorizedError{}
	case status == http.StatusForbidden:
		if message == "" {
			message = "you do not have permission to perform this action"
		}
		if c.onForbidden != nil {
			c.onForbidden(message)
		}
		return &ForbiddenError{Message: message}
	case status >= 500:
		if message == "" {
			message = "server error, please try again later"
		}
		if c.onTransient != nil {
			c.onTransient(message)
		}
		return &TransientError{Message: message}
	default:
		code := ""
		if env.Error != nil {
			code = env.Error.Code
		}
		return &RequestError{Status: status, Code: code, Message: message}
	}
}

func (c *Client) transient(message string, err error) error {
	if c.onTransient != nil {
		c.onTransient(message)
	}
	return &TransientError{Message: message, Err: err}
}

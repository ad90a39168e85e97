package console

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
)

// Client speaks the console backend's REST contract: the three auth
// endpoints plus bearer-authenticated requests with a single
// retry-after-refresh on 401.
type Client struct {
	baseURL      string
	http         *http.Client
	logger       Logger
	tokens       *TokenLifecycle
	onAuthFailed func()
}

// NewClient returns a client for the given base URL (no trailing
// slash required).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  defLogger{},
	}
}

func (c *Client) WithLogger(logger Logger) *Client {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// WithTokenLifecycle wires the lifecycle manager used by Do to attach
// and refresh bearer tokens.
func (c *Client) WithTokenLifecycle(tokens *TokenLifecycle) *Client {
	c.tokens = tokens
	return c
}

// WithAuthFailedHandler registers the forced sign-out hook invoked
// when the refresh budget is exhausted.
func (c *Client) WithAuthFailedHandler(fn func()) *Client {
	c.onAuthFailed = fn
	return c
}

// WithHTTPClient swaps the underlying HTTP client (useful for tests).
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	if h != nil {
		c.http = h
	}
	return c
}

type loginUser struct {
	ID          flexibleID      `json:"id"`
	Username    string          `json:"username"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Permissions map[string]bool `json:"permissions"`
}

type loginProfile struct {
	ID        flexibleID `json:"id"`
	Name      string     `json:"name"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// LoginResponse is the successful POST /auth/login/ payload.
type LoginResponse struct {
	User    loginUser    `json:"user"`
	Profile loginProfile `json:"profile"`
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
}

// RegisterRequest is the POST /auth/register/ payload.
type RegisterRequest struct {
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	Role            string `json:"role"`
}

// flexibleID accepts both numeric and string ids; the backend emits
// numbers, the console stores strings.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

func (f flexibleID) String() string {
	return string(f)
}

// Login posts credentials and returns the session payload. Rejections
// surface the server's detail message; transport failures map to the
// network error category.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}

	resp, err := c.postJSON(ctx, "/auth/login/", body)
	if err != nil {
		return nil, networkError(err, "login")
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		detail := struct {
			Detail string `json:"detail"`
		}{}
		_ = json.NewDecoder(resp.Body).Decode(&detail)
		if detail.Detail == "" {
			detail.Detail = "Login failed"
		}
		return nil, rejectionError(detail.Detail)
	}

	out := &LoginResponse{}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to decode login response")
	}
	return out, nil
}

// registerError mirrors the backend's field-specific validation
// arrays.
type registerError struct {
	Password  []string `json:"password"`
	Username  []string `json:"username"`
	FirstName []string `json:"first_name"`
	LastName  []string `json:"last_name"`
	Detail    string   `json:"detail"`
}

func (e registerError) message() string {
	for _, field := range [][]string{e.Password, e.Username, e.FirstName, e.LastName} {
		if len(field) > 0 {
			return field[0]
		}
	}
	if e.Detail != "" {
		return e.Detail
	}
	return "Registration failed"
}

// Register creates an account. Success does not sign the account in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	resp, err := c.postJSON(ctx, "/auth/register/", req)
	if err != nil {
		return networkError(err, "registration")
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		fieldErr := registerError{}
		_ = json.NewDecoder(resp.Body).Decode(&fieldErr)
		return rejectionError(fieldErr.message())
	}
	return nil
}

// RefreshTokens implements TokenRefresher against POST /auth/refresh/.
// The rotated refresh token is empty when the backend keeps the old
// one valid.
func (c *Client) RefreshTokens(ctx context.Context, refreshToken string) (string, string, error) {
	resp, err := c.postJSON(ctx, "/auth/refresh/", map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", "", networkError(err, "token refresh")
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return "", "", errors.New("refresh rejected", errors.CategoryAuth).
			WithTextCode(ErrTokenExpired.TextCode).
			WithCode(errors.CodeUnauthorized).
			WithMetadata(map[string]any{"status": resp.StatusCode})
	}

	out := struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", errors.Wrap(err, errors.CategoryInternal, "failed to decode refresh response")
	}
	if out.Access == "" {
		return "", "", errors.New("refresh response missing access token", errors.CategoryInternal)
	}
	return out.Access, out.Refresh, nil
}

// APIResponse carries the raw outcome of an authenticated request.
type APIResponse struct {
	Status int
	Body   []byte
}

// OK reports whether the response status is 2xx.
func (r *APIResponse) OK() bool {
	return r != nil && is2xx(r.Status)
}

// Decode unmarshals the response body into v.
func (r *APIResponse) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Do performs an authenticated request. It ensures the access token is
// valid first, attaches the bearer header, and on a 401 runs one
// refresh-and-retry cycle. Exhausting that budget invokes the
// auth-failed handler (forced sign-out) and returns ErrTokenExpired.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*APIResponse, error) {
	if c.tokens == nil {
		return nil, errors.New("client has no token lifecycle configured", errors.CategoryInternal)
	}

	if err := c.tokens.EnsureValid(ctx); err != nil {
		c.authFailed()
		return nil, err
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to encode request body")
		}
	}

	resp, err := c.send(ctx, method, path, payload)
	if err != nil {
		return nil, networkError(err, "api request")
	}

	if resp.Status != http.StatusUnauthorized {
		return resp, nil
	}

	// 401 despite a locally valid token: the backend is the authority.
	// Walk the explicit retry machine with a budget of one.
	attempt := newRefreshAttempt()
	if !attempt.begin() {
		c.authFailed()
		return nil, ErrTokenExpired
	}

	if !c.tokens.Refresh(ctx) {
		attempt.fail()
		c.logger.Info("refresh rejected after 401 on %s, forcing sign-out", path)
		c.authFailed()
		return nil, ErrTokenExpired
	}
	attempt.succeed()

	retry, err := c.send(ctx, method, path, payload)
	if err != nil {
		return nil, networkError(err, "api request retry")
	}
	if retry.Status == http.StatusUnauthorized {
		attempt.fail()
		c.authFailed()
		return nil, ErrTokenExpired
	}

	return retry, nil
}

// Get issues an authenticated GET.
func (c *Client) Get(ctx context.Context, path string) (*APIResponse, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post issues an authenticated POST.
func (c *Client) Post(ctx context.Context, path string, body any) (*APIResponse, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put issues an authenticated PUT.
func (c *Client) Put(ctx context.Context, path string, body any) (*APIResponse, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Patch issues an authenticated PATCH.
func (c *Client) Patch(ctx context.Context, path string, body any) (*APIResponse, error) {
	return c.Do(ctx, http.MethodPatch, path, body)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string) (*APIResponse, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) (*APIResponse, error) {
	var reader *bytes.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.tokens.AccessToken(ctx)
	if err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}

	return &APIResponse{Status: resp.StatusCode, Body: buf.Bytes()}, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.http.Do(req)
}

func (c *Client) authFailed() {
	if c.onAuthFailed != nil {
		c.onAuthFailed()
	}
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

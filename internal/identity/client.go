// Package identity is a client for the Identity Toolkit REST API used to
// create and authenticate family accounts.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://identitytoolkit.googleapis.com"

	// defaultTimeout bounds a provider call when no HTTP client is supplied.
	defaultTimeout = 10 * time.Second
)

var (
	ErrNotConfigured      = errors.New("identity client not configured")
	ErrEmailExists        = errors.New("email already in use")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrTooManyAttempts    = errors.New("too many attempts")
	ErrWeakPassword       = errors.New("weak password")
	ErrNetwork            = errors.New("network error")
)

// providerCodes maps the provider's error message prefixes to sentinels.
var providerCodes = map[string]error{
	"EMAIL_EXISTS":                ErrEmailExists,
	"INVALID_EMAIL":               ErrInvalidEmail,
	"EMAIL_NOT_FOUND":             ErrInvalidCredentials,
	"INVALID_PASSWORD":            ErrInvalidCredentials,
	"INVALID_LOGIN_CREDENTIALS":   ErrInvalidCredentials,
	"USER_DISABLED":               ErrUserDisabled,
	"TOO_MANY_ATTEMPTS_TRY_LATER": ErrTooManyAttempts,
	"WEAK_PASSWORD":               ErrWeakPassword,
}

// User is an authenticated provider account.
type User struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName,omitempty"`
	IDToken      string `json:"-"`
	RefreshToken string `json:"-"`
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func WithBaseURL(u string) Option {
	return func(cl *Client) {
		cl.baseURL = strings.TrimRight(u, "/")
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type accountResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignUp creates an account with email and password.
func (c *Client) SignUp(ctx context.Context, email, password string) (*User, error) {
	var resp accountResponse
	err := c.post(ctx, "accounts:signUp", credentialsRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	return resp.user(), nil
}

// SignIn authenticates an existing account with email and password.
func (c *Client) SignIn(ctx context.Context, email, password string) (*User, error) {
	var resp accountResponse
	err := c.post(ctx, "accounts:signInWithPassword", credentialsRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return resp.user(), nil
}

// UpdateDisplayName sets the display name on the account owning idToken.
func (c *Client) UpdateDisplayName(ctx context.Context, idToken, name string) error {
	payload := struct {
		IDToken           string `json:"idToken"`
		DisplayName       string `json:"displayName"`
		ReturnSecureToken bool   `json:"returnSecureToken"`
	}{IDToken: idToken, DisplayName: name}

	if err := c.post(ctx, "accounts:update", payload, nil); err != nil {
		return fmt.Errorf("update display name: %w", err)
	}
	return nil
}

func (r accountResponse) user() *User {
	return &User{
		UID:          r.LocalID,
		Email:        r.Email,
		DisplayName:  r.DisplayName,
		IDToken:      r.IDToken,
		RefreshToken: r.RefreshToken,
	}
}

func (c *Client) post(ctx context.Context, method string, payload, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/%s?key=%s", c.baseURL, method, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError maps a provider error body to a sentinel. Messages look like
// "EMAIL_EXISTS" or "WEAK_PASSWORD : Password should be at least 6 characters".
func decodeError(resp *http.Response) error {
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error.Message == "" {
		return fmt.Errorf("identity API error: status %d", resp.StatusCode)
	}

	code, _, _ := strings.Cut(e.Error.Message, " ")
	if sentinel, ok := providerCodes[code]; ok {
		return fmt.Errorf("%w (%s)", sentinel, e.Error.Message)
	}
	return fmt.Errorf("identity API error: status %d: %s", resp.StatusCode, e.Error.Message)
}

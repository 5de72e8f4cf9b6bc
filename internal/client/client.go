// AngelaMos | 2026
// client.go

// Package client is a typed HTTP client for the InternHub API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carterperez-dev/internhub/internal/application"
	"github.com/carterperez-dev/internhub/internal/auth"
	"github.com/carterperez-dev/internhub/internal/company"
	"github.com/carterperez-dev/internhub/internal/core"
	"github.com/carterperez-dev/internhub/internal/user"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
)

// TokenSource yields the bearer token for each request; "" sends none.
type TokenSource func(ctx context.Context) (string, error)

type Client struct {
	baseURL *url.URL
	http    *http.Client
	token   TokenSource
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Register(
	ctx context.Context,
	req auth.RegisterRequest,
) (*auth.AuthResponse, error) {
	var out auth.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*auth.AuthResponse, error) {
	var out auth.AuthResponse
	req := auth.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*user.UserResponse, error) {
	var out user.UserResponse
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCompanies(ctx context.Context) ([]company.Company, error) {
	var out []company.Company
	if err := c.do(ctx, http.MethodGet, "/companies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCompany(ctx context.Context, id string) (*company.Company, error) {
	var out company.Company
	if err := c.do(ctx, http.MethodGet, "/companies/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCompany(
	ctx context.Context,
	req company.CreateCompanyRequest,
) (*company.Company, error) {
	var out company.Company
	if err := c.do(ctx, http.MethodPost, "/companies", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCompany(ctx context.Context, id string) error {
	var out core.MessageResponse
	return c.do(ctx, http.MethodDelete, "/companies/"+url.PathEscape(id), nil, &out)
}

func (c *Client) ToggleCompany(ctx context.Context, id string) (*company.Company, error) {
	var out company.Company
	path := "/companies/" + url.PathEscape(id) + "/toggle"
	if err := c.do(ctx, http.MethodPatch, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Apply(ctx context.Context, companyID string) (*application.Application, error) {
	var out application.Application
	req := application.ApplyRequest{CompanyID: companyID}
	if err := c.do(ctx, http.MethodPost, "/applications/apply", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyApplications(ctx context.Context) ([]application.Application, error) {
	var out []application.Application
	if err := c.do(ctx, http.MethodGet, "/applications/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateStatus(
	ctx context.Context,
	id, status string,
) (*application.Application, error) {
	var out application.Application
	path := "/applications/" + url.PathEscape(id) + "/status"
	req := application.UpdateStatusRequest{Status: status}
	if err := c.do(ctx, http.MethodPatch, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AllApplications(ctx context.Context) ([]application.Application, error) {
	var out []application.Application
	if err := c.do(ctx, http.MethodGet, "/applications/admin/all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	return c.do(ctx, http.MethodGet, "/health", nil, &out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != nil {
		token, tokErr := c.token(ctx)
		if tokErr != nil {
			return fmt.Errorf("load token: %w", tokErr)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)) //nolint:errcheck // best-effort body
	var body core.ErrorResponse
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}

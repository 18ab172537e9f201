package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/recoverydesk/recovery-console/internal/model"
)

// APIError is a backend-reported failure: a non-2xx response whose JSON body
// carries a human-readable "detail" string. Detail may be empty when the
// backend returned a non-JSON body; callers substitute their own fallback
// message in that case (see ErrorMessage).
type APIError struct {
	StatusCode int
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
}

// ErrorMessage resolves the message to show the user for a failed call:
// the backend detail when the failure carries one, otherwise the
// per-operation fallback. Transport failures (no response at all) always
// yield the fallback.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// Client talks to the recovery tracker REST backend. Every method is a
// single round trip: no retries, no caching, no timeout beyond what the
// caller's context or http.Client imposes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// Options configures a Client.
type Options struct {
	// BaseURL of the backend, e.g. "http://localhost:8000".
	BaseURL string
	// HTTPClient to use; defaults to a client with no timeout, matching the
	// backend contract that a hung request is the caller's to bound.
	HTTPClient *http.Client
	Logger     *log.Logger
}

// NewClient creates a REST client for the given backend.
func NewClient(opts Options) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// do performs one request/response cycle. A non-2xx response is decoded into
// an *APIError; everything else (connection refused, context cancellation)
// surfaces as the transport error unchanged.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, reqBody, resBody interface{}) error {
	var body io.Reader
	if reqBody != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(reqBody); err != nil {
			return err
		}
		body = buf
	}

	u := c.baseURL + path
	if len(params) != 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("%s %s: transport error: %v", method, path, err)
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{StatusCode: res.StatusCode}
		// Best effort: a missing or malformed detail leaves Detail empty.
		_ = json.NewDecoder(res.Body).Decode(apiErr)
		c.logger.Printf("%s %s: %v", method, path, apiErr)
		return apiErr
	}

	if resBody != nil {
		if err := json.NewDecoder(res.Body).Decode(resBody); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// ListClients fetches all clients.
func (c *Client) ListClients(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	if err := c.do(ctx, http.MethodGet, "/clients", nil, nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// CreateClient creates a client record and returns the stored version.
func (c *Client) CreateClient(ctx context.Context, in model.ClientCreate) (*model.Client, error) {
	var created model.Client
	if err := c.do(ctx, http.MethodPost, "/clients", nil, in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListCases fetches cases matching the filter. Unset filter fields are
// omitted from the query string; filtering and sorting happen server-side.
func (c *Client) ListCases(ctx context.Context, filter model.CaseFilter) ([]model.Case, error) {
	var cases []model.Case
	if err := c.do(ctx, http.MethodGet, "/cases", filter.Values(), nil, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// GetCase fetches one case with its embedded client.
func (c *Client) GetCase(ctx context.Context, id int64) (*model.Case, error) {
	var out model.Case
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/cases/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCase creates a case and returns the stored version.
func (c *Client) CreateCase(ctx context.Context, in model.CaseCreate) (*model.Case, error) {
	var created model.Case
	if err := c.do(ctx, http.MethodPost, "/cases", nil, in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCase applies a partial update carrying only the changed fields.
// Callers are expected to check CaseUpdate.Empty first; an empty update is
// rejected locally without a network call.
func (c *Client) UpdateCase(ctx context.Context, id int64, upd model.CaseUpdate) (*model.Case, error) {
	if upd.Empty() {
		return nil, errors.New("api: empty update")
	}
	var updated model.Case
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/cases/%d", id), nil, upd, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

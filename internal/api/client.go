package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/periodo/periodo-cli/internal/config"
	"github.com/periodo/periodo-cli/internal/http"
	"github.com/periodo/periodo-cli/internal/logging"
)

// retryLogger adapts the CLI logger to the retryablehttp.LeveledLogger
// interface. Only warnings and errors are surfaced.
type retryLogger struct {
	logger *logging.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Errorf("retry: %s %v", msg, keysAndValues)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warnf("retry: %s %v", msg, keysAndValues)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {}

// Patch is a proposed edit tracked by the service. Contents are opaque to
// the client; only the listing attributes are decoded.
type Patch struct {
	URL       string `json:"url"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

// Identity describes the authenticated caller and its permissions.
type Identity struct {
	Name        string   `json:"name"`
	ID          string   `json:"id"`
	Permissions []string `json:"permissions"`
}

// Client talks to the periodization data service.
type Client struct {
	// retrying is used for idempotent methods (GET, PUT, DELETE).
	retrying *nethttp.Client
	// once is used for PATCH and POST, which must not be replayed: a
	// retried submit or merge could apply twice.
	once *nethttp.Client

	baseURL string
	token   string
	logger  *logging.Logger
}

// NewClient creates an API client for the given configuration. The token
// may be empty for unauthenticated operations.
func NewClient(cfg *config.Config, token string, logger *logging.Logger) (*Client, error) {
	if cfg == nil || cfg.ServerURL == "" {
		return nil, fmt.Errorf("server URL is empty")
	}
	if _, err := url.Parse(cfg.ServerURL); err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", cfg.ServerURL, err)
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	baseClient, err := http.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = baseClient
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = &retryLogger{logger: logger}

	return &Client{
		retrying: retryClient.StandardClient(),
		once:     baseClient,
		baseURL:  config.NormalizeServerURL(cfg.ServerURL),
		token:    token,
		logger:   logger,
	}, nil
}

// ServerURL returns the normalized base URL of the service.
func (c *Client) ServerURL() string {
	return c.baseURL
}

// doRequest issues one HTTP request. The body is buffered, so idempotent
// methods can be retried safely.
func (c *Client) doRequest(ctx context.Context, method, rawURL string, body []byte, authed bool) (*nethttp.Response, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := nethttp.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	client := c.once
	switch method {
	case nethttp.MethodGet, nethttp.MethodPut, nethttp.MethodDelete, nethttp.MethodHead:
		client = c.retrying
	}

	c.logger.Debugf("%s %s", method, rawURL)
	resp, err := client.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	return resp, nil
}

// checkStatus compares the response status to the operation's expected
// code. 401 always maps to the fixed token-expired error; any other
// mismatch carries the message extracted from the body.
func (c *Client) checkStatus(resp *nethttp.Response, expected int) error {
	if resp.StatusCode == expected {
		return nil
	}
	if resp.StatusCode == nethttp.StatusUnauthorized {
		return ErrTokenExpired
	}

	body, _ := io.ReadAll(resp.Body)
	return remoteError(resp.StatusCode, body)
}

// resolveLocation resolves a Location header against the server base, so
// relative locations come back as absolute URLs.
func (c *Client) resolveLocation(location string) string {
	if location == "" {
		return ""
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return location
	}
	ref, err := url.Parse(location)
	if err != nil {
		return location
	}
	return base.ResolveReference(ref).String()
}

// SubmitPatch submits a patch document and returns the URL the server
// assigned to it.
func (c *Client) SubmitPatch(ctx context.Context, patch []byte) (string, error) {
	resp, err := c.doRequest(ctx, nethttp.MethodPatch, c.baseURL+"d.json", patch, true)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, nethttp.StatusAccepted); err != nil {
		return "", err
	}
	return c.resolveLocation(resp.Header.Get("Location")), nil
}

// MergePatch merges a previously submitted patch into the dataset.
func (c *Client) MergePatch(ctx context.Context, patchURL string) error {
	return c.patchAction(ctx, patchURL, "merge")
}

// RejectPatch rejects a previously submitted patch.
func (c *Client) RejectPatch(ctx context.Context, patchURL string) error {
	return c.patchAction(ctx, patchURL, "reject")
}

// patchAction POSTs to a verb-suffixed sub-path of the patch URL.
func (c *Client) patchAction(ctx context.Context, patchURL, verb string) error {
	if !strings.HasSuffix(patchURL, "/") {
		patchURL += "/"
	}

	resp, err := c.doRequest(ctx, nethttp.MethodPost, patchURL+verb, nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.checkStatus(resp, nethttp.StatusNoContent)
}

// CreateBag creates a bag under the given identifier and returns the new
// bag's URL.
func (c *Client) CreateBag(ctx context.Context, id string, body []byte) (string, error) {
	resp, err := c.doRequest(ctx, nethttp.MethodPut, c.baseURL+"bags/"+id, body, true)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, nethttp.StatusCreated); err != nil {
		return "", err
	}

	location := c.resolveLocation(resp.Header.Get("Location"))
	if location == "" {
		location = c.baseURL + "bags/" + id
	}
	return location, nil
}

// UpdateGraph replaces the named graph and returns its URL.
func (c *Client) UpdateGraph(ctx context.Context, id string, body []byte) (string, error) {
	resp, err := c.doRequest(ctx, nethttp.MethodPut, c.baseURL+"graphs/"+id, body, true)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, nethttp.StatusCreated); err != nil {
		return "", err
	}

	location := c.resolveLocation(resp.Header.Get("Location"))
	if location == "" {
		location = c.baseURL + "graphs/" + id
	}
	return location, nil
}

// DeleteGraph deletes the named graph.
func (c *Client) DeleteGraph(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, nethttp.MethodDelete, c.baseURL+"graphs/"+id, nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.checkStatus(resp, nethttp.StatusNoContent)
}

// ListOpenPatches lists open, unmerged patches in ascending order. This is
// an unauthenticated read.
func (c *Client) ListOpenPatches(ctx context.Context) ([]Patch, error) {
	listURL := c.baseURL + "patches.json?open=true&merged=false&order=asc"

	resp, err := c.doRequest(ctx, nethttp.MethodGet, listURL, nil, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, nethttp.StatusOK); err != nil {
		return nil, err
	}

	var patches []Patch
	if err := json.NewDecoder(resp.Body).Decode(&patches); err != nil {
		return nil, fmt.Errorf("failed to decode patch list: %w", err)
	}
	return patches, nil
}

// GetIdentity fetches the authenticated caller's identity and permissions.
func (c *Client) GetIdentity(ctx context.Context) (*Identity, error) {
	resp, err := c.doRequest(ctx, nethttp.MethodGet, c.baseURL+"identity", nil, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, nethttp.StatusOK); err != nil {
		return nil, err
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("failed to decode identity: %w", err)
	}
	return &identity, nil
}

// PatchReviewURL derives the human-review page for a submitted patch by
// substituting the client host for the data host. Returns "" when the
// server URL does not follow the data-host naming pattern.
func PatchReviewURL(serverURL, patchURL string) string {
	u, err := url.Parse(serverURL)
	if err != nil {
		return ""
	}
	if !strings.HasPrefix(u.Host, "data.") {
		return ""
	}
	u.Host = "client." + strings.TrimPrefix(u.Host, "data.")
	u.Path = "/"
	u.RawQuery = "page=review-patch&patchURL=" + url.QueryEscape(patchURL)
	return u.String()
}

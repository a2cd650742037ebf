// Package civic is the HTTP client for the barangay civic API, the
// external system of record behind this application. Every piece of
// domain data (profiles, document requests, blotter schedules, household
// records) lives upstream; this package only moves it.
//
// The client normalizes the API's variant response shapes at this
// boundary (see FetchUser) so no code past it performs shape-sniffing,
// and it maps upstream failures onto a small error taxonomy:
//
//   - ErrUnauthenticated: HTTP 401, the session credential is invalid
//   - ErrNotFound: HTTP 404; on the profile fetch this is expected for
//     brand-new accounts, not a failure
//   - anything else: wrapped transport or status errors
package civic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sentinel errors for the two upstream statuses callers branch on.
var (
	ErrUnauthenticated = errors.New("civic: unauthenticated")
	ErrNotFound        = errors.New("civic: not found")
)

// StatusError wraps an unexpected upstream status code.
type StatusError struct {
	Status int
	Path   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("civic: %s returned status %d", e.Path, e.Status)
}

// Credentials identify a session to the upstream API. Token-bearing
// sessions send an Authorization header; cookie sessions replay the
// cookies captured at login. Both may be set.
type Credentials struct {
	Token  string
	Cookie string
}

// IsZero reports whether no credential is present.
func (c Credentials) IsZero() bool {
	return c.Token == "" && c.Cookie == ""
}

// Client talks to the civic API.
type Client struct {
	baseURL     string
	authBaseURL string
	httpClient  *http.Client
	log         *zap.Logger
}

// New constructs a Client. baseURL is the API root (e.g.
// "https://api.barangay.example"); authBaseURL is the origin that issues
// the CSRF cookie for credential posts and defaults to baseURL when
// blank.
func New(baseURL, authBaseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if authBaseURL == "" {
		authBaseURL = baseURL
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		authBaseURL: strings.TrimRight(authBaseURL, "/"),
		httpClient:  httpClient,
		log:         logger,
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// CloseIdleConnections releases kept-alive upstream connections.
// Called from the app shutdown hook.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// Ping verifies the upstream is reachable and serving. Transport
// failures and 5xx responses are errors; auth failures are not, since
// the probe is unauthenticated.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/up", Credentials{}, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("civic: ping: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("civic: ping: upstream returned %d", resp.StatusCode)
	}
	return nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Request plumbing                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (c *Client) newRequest(ctx context.Context, method, path string, creds Credentials, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("civic: build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if creds.Token != "" {
		req.Header.Set("Authorization", "Bearer "+creds.Token)
	}
	if creds.Cookie != "" {
		req.Header.Set("Cookie", creds.Cookie)
	}
	return req, nil
}

// getJSON performs a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, creds Credentials, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, creds, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

// postJSON performs a POST with a JSON body and decodes the response
// into out (out may be nil to discard the body).
func (c *Client) postJSON(ctx context.Context, path string, creds Credentials, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("civic: encode %s body: %w", path, err)
		}
		body = bytes.NewReader(buf)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, creds, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.doJSON(req, out)
}

// postForm performs a POST with form-encoded values.
func (c *Client) postForm(ctx context.Context, path string, creds Credentials, form url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, creds, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("civic: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if err := statusErr(resp.StatusCode, req.URL.Path); err != nil {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return err
	}
	if out == nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("civic: read %s response: %w", req.URL.Path, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("civic: decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

// maxResponseBytes caps upstream response bodies. Lists here are small;
// anything past this indicates a broken upstream.
const maxResponseBytes = 8 << 20

func statusErr(code int, path string) error {
	switch {
	case code == http.StatusUnauthorized:
		return ErrUnauthenticated
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case code >= 400:
		return &StatusError{Status: code, Path: path}
	default:
		return nil
	}
}

// internal/app/client/civic/auth.go
package civic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// csrfCookiePath is the priming endpoint on the auth origin. The
// upstream uses cookie-based session auth (Laravel Sanctum), which
// requires fetching the XSRF cookie before any credential post.
const csrfCookiePath = "/sanctum/csrf-cookie"

// LoginResult carries whatever session credential the upstream issued:
// a bearer token, upstream session cookies, or both.
type LoginResult struct {
	Credentials Credentials
}

// Login authenticates against the upstream in two ordered steps:
//
//  1. CSRF-prime: GET the auth origin's csrf-cookie endpoint with a
//     fresh cookie jar. If this fails, Login returns before any
//     credential is sent. The ordering is a hard guarantee, not an
//     optimization.
//  2. POST /login with the credentials, replaying the primed cookies
//     and the XSRF token header.
//
// The response may carry a bearer token under "token" or "access_token";
// if neither is present the session rides on the upstream cookies alone.
// Either way the caller is expected to follow up with FetchUser to
// hydrate the session.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return LoginResult{}, fmt.Errorf("civic: login cookie jar: %w", err)
	}

	xsrf, err := c.primeCSRF(ctx, jar)
	if err != nil {
		return LoginResult{}, fmt.Errorf("civic: csrf priming failed: %w", err)
	}

	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authBaseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return LoginResult{}, fmt.Errorf("civic: build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if xsrf != "" {
		req.Header.Set("X-XSRF-TOKEN", xsrf)
	}
	for _, ck := range jar.Cookies(req.URL) {
		req.AddCookie(ck)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return LoginResult{}, fmt.Errorf("civic: login post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusUnprocessableEntity {
		return LoginResult{}, ErrUnauthenticated
	}
	if resp.StatusCode >= 400 {
		return LoginResult{}, &StatusError{Status: resp.StatusCode, Path: "/login"}
	}

	var body struct {
		Token       string `json:"token"`
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		// A cookie-session upstream may answer with an empty or
		// non-JSON body; that is not a failure.
		c.log.Debug("login response had no JSON body", zap.Error(err))
	}

	token := body.Token
	if token == "" {
		token = body.AccessToken
	}

	jar.SetCookies(req.URL, resp.Cookies())
	return LoginResult{Credentials: Credentials{
		Token:  token,
		Cookie: serializeCookies(jar.Cookies(req.URL)),
	}}, nil
}

// Logout is best-effort: the upstream session is invalidated when
// possible, but a dead upstream must never keep a user logged in
// locally, so the caller swallows any error returned here.
func (c *Client) Logout(ctx context.Context, creds Credentials) error {
	return c.postJSON(ctx, "/logout", creds, nil, nil)
}

// primeCSRF fetches the CSRF cookie from the auth origin into jar and
// returns the XSRF token value for the follow-up header.
func (c *Client) primeCSRF(ctx context.Context, jar http.CookieJar) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.authBaseURL+csrfCookiePath, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", &StatusError{Status: resp.StatusCode, Path: csrfCookiePath}
	}

	jar.SetCookies(req.URL, resp.Cookies())

	for _, ck := range resp.Cookies() {
		if ck.Name == "XSRF-TOKEN" {
			// Sanctum URL-encodes the cookie value.
			if v, err := url.QueryUnescape(ck.Value); err == nil {
				return v, nil
			}
			return ck.Value, nil
		}
	}
	return "", nil
}

func serializeCookies(cookies []*http.Cookie) string {
	if len(cookies) == 0 {
		return ""
	}
	parts := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		parts = append(parts, ck.Name+"="+ck.Value)
	}
	return strings.Join(parts, "; ")
}

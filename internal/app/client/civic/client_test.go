package civic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "", srv.Client(), zap.NewNop()), srv
}

func TestFetchUser_NormalizesAllShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			"split envelope",
			`{"user":{"id":"7","role":"residents"},"profile":{"first_name":"Ana","last_name":"Reyes","verification_status":"approved"}}`,
		},
		{
			"nested under user",
			`{"user":{"id":"7","role":"residents","profile":{"first_name":"Ana","last_name":"Reyes","verification_status":"approved"}}}`,
		},
		{
			"flat user with inline profile",
			`{"id":"7","role":"residents","first_name":"Ana","last_name":"Reyes","verification_status":"approved"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/profile" {
					http.NotFound(w, r)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))

			u, err := c.FetchUser(context.Background(), Credentials{Token: "tok"})
			if err != nil {
				t.Fatalf("FetchUser failed: %v", err)
			}
			if u.ID != "7" || u.Role != "residents" {
				t.Errorf("user = %+v, want id=7 role=residents", u)
			}
			if u.Profile == nil {
				t.Fatal("profile was not attached")
			}
			if u.Profile.FirstName != "Ana" || !u.Profile.IsApproved() {
				t.Errorf("profile = %+v, want Ana/approved", u.Profile)
			}
		})
	}
}

func TestFetchUser_BareProfilePayload(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"residents_id":"42","first_name":"Ben","last_name":"Cruz","verification_status":"pending"}`))
	}))

	u, err := c.FetchUser(context.Background(), Credentials{Token: "tok"})
	if err != nil {
		t.Fatalf("FetchUser failed: %v", err)
	}
	if u.Role != "residents" {
		t.Errorf("role = %q, want residents", u.Role)
	}
	if u.ID != "42" {
		t.Errorf("id = %q, want the residents_id", u.ID)
	}
	if u.Profile == nil || u.Profile.FirstName != "Ben" {
		t.Errorf("profile not hoisted: %+v", u.Profile)
	}
}

func TestFetchUser_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"401 maps to ErrUnauthenticated", http.StatusUnauthorized, ErrUnauthenticated},
		{"404 maps to ErrNotFound", http.StatusNotFound, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			_, err := c.FetchUser(context.Background(), Credentials{Token: "tok"})
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFetchUser_SendsBearerToken(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"user":{"id":"1","role":"admin"}}`))
	}))

	if _, err := c.FetchUser(context.Background(), Credentials{Token: "secret"}); err != nil {
		t.Fatalf("FetchUser failed: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want Bearer secret", gotAuth)
	}
}

func TestLogin_PrimesCSRFBeforeCredentialPost(t *testing.T) {
	var order []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/sanctum/csrf-cookie":
			http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "xsrf%3Dvalue"})
			w.WriteHeader(http.StatusNoContent)
		case "/login":
			if r.Header.Get("X-XSRF-TOKEN") == "" {
				t.Error("credential post missing X-XSRF-TOKEN header")
			}
			w.Write([]byte(`{"access_token":"tok-123"}`))
		default:
			http.NotFound(w, r)
		}
	}))

	res, err := c.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.Credentials.Token != "tok-123" {
		t.Errorf("token = %q, want tok-123", res.Credentials.Token)
	}
	if len(order) != 2 || order[0] != "GET /sanctum/csrf-cookie" || order[1] != "POST /login" {
		t.Errorf("request order = %v, want csrf-cookie then login", order)
	}
}

// When CSRF priming fails, the credentials must never leave the process.
func TestLogin_AbortsWhenPrimingFails(t *testing.T) {
	var sawLogin bool
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sanctum/csrf-cookie":
			w.WriteHeader(http.StatusInternalServerError)
		case "/login":
			sawLogin = true
		}
	}))

	if _, err := c.Login(context.Background(), "a@b.com", "pw"); err == nil {
		t.Fatal("expected Login to fail when priming fails")
	}
	if sawLogin {
		t.Error("credential post was sent despite priming failure")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sanctum/csrf-cookie":
			w.WriteHeader(http.StatusNoContent)
		case "/login":
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))

	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestLogin_CookieSessionWithoutToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sanctum/csrf-cookie":
			http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "x"})
			w.WriteHeader(http.StatusNoContent)
		case "/login":
			http.SetCookie(w, &http.Cookie{Name: "civic_session", Value: "abc"})
			w.WriteHeader(http.StatusNoContent)
		}
	}))

	res, err := c.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.Credentials.Token != "" {
		t.Errorf("token = %q, want empty for cookie session", res.Credentials.Token)
	}
	if res.Credentials.Cookie == "" {
		t.Error("expected upstream session cookies to be captured")
	}
}

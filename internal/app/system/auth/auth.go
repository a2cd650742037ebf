package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	"github.com/dalemusser/barangayhub/internal/domain/models"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// Session value keys. auth_token, user, and resident_id mirror the
// storage contract the rest of the system shares (the browser app keeps
// the same three values); upstream_cookie carries the civic API's own
// session cookies for cookie-mode logins.
const (
	isAuthKey         = "is_authenticated"
	authTokenKey      = "auth_token"
	upstreamCookieKey = "upstream_cookie"
	userJSONKey       = "user"
	residentIDKey     = "resident_id"
)

// SessionUser is what we cache in the session and inject into
// r.Context(). User is the full normalized snapshot from the last fetch;
// the flat fields exist so cheap checks don't chase the pointer.
type SessionUser struct {
	ID         string
	Name       string
	Role       string
	ResidentID string
	Creds      civic.Credentials
	User       *models.User
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the session user and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects a session user into the request context,
// bypassing the cookie round trip. Test helper; not for handlers.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the cookie store and all reads/writes of session
// values. Handlers never touch gorilla/sessions directly.
type SessionManager struct {
	store       *sessions.CookieStore
	sessionName string
	log         *zap.Logger
}

// NewSessionManager builds the cookie store. The `secure` flag controls
// whether cookies are marked Secure and which SameSite mode is used:
// in production (secure=true) cookies are Secure + SameSite=Lax; over
// http://localhost use secure=false so cookies are accepted.
func NewSessionManager(sessionKey, sessionName, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if sessionName == "" {
		sessionName = "barangayhub-session"
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, sessionName: sessionName, log: logger}, nil
}

// GenerateKey returns a fresh random session key, handy for dev setups.
func GenerateKey() string {
	return string(securecookie.GenerateRandomKey(32))
}

// Establish writes the authenticated identity into the session cookie.
// Called after login and after every snapshot refresh so the serialized
// user never goes stale relative to the in-memory snapshot.
func (sm *SessionManager) Establish(w http.ResponseWriter, r *http.Request, creds civic.Credentials, u *models.User) error {
	sess, _ := sm.store.Get(r, sm.sessionName)

	userJSON, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("serialize session user: %w", err)
	}

	sess.Values[isAuthKey] = true
	sess.Values[authTokenKey] = creds.Token
	sess.Values[upstreamCookieKey] = creds.Cookie
	sess.Values[userJSONKey] = string(userJSON)

	residentID := ""
	if u != nil && u.Profile != nil {
		residentID = u.Profile.ResidentsID
	}
	sess.Values[residentIDKey] = residentID

	return sess.Save(r, w)
}

// Clear drops every session value. Logout must always succeed locally,
// so callers ignore upstream failures before reaching here.
func (sm *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.sessionName)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// SessionID returns a stable identifier for the current session's
// credential, used as the snapshot cache key. Empty when signed out.
func (sm *SessionManager) SessionID(r *http.Request) string {
	if u, ok := CurrentUser(r); ok {
		if u.Creds.Token != "" {
			return u.Creds.Token
		}
		return u.Creds.Cookie
	}
	return ""
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// LoadSessionUser injects the user into context if they are logged in.
// The serialized user in the cookie is the synchronous bootstrap read:
// no upstream call happens here, so every request renders with the last
// known snapshot even if the civic API is slow.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sm.store.Get(r, sm.sessionName)

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			su := &SessionUser{
				ResidentID: getString(sess, residentIDKey),
				Creds: civic.Credentials{
					Token:  getString(sess, authTokenKey),
					Cookie: getString(sess, upstreamCookieKey),
				},
			}

			if raw := getString(sess, userJSONKey); raw != "" {
				var u models.User
				if err := json.Unmarshal([]byte(raw), &u); err != nil {
					sm.log.Warn("corrupt session user; treating as signed out", zap.Error(err))
				} else {
					su.User = &u
					su.ID = u.ID
					su.Name = u.Name
					su.Role = strings.ToLower(strings.TrimSpace(u.Role))
				}
			}

			if su.User != nil || !su.Creds.IsZero() {
				r = withUser(r, su)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by
// LoadSessionUser). If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		redirectToLogin(w, r)
	})
}

// RequireRole ensures there is a user with one of the allowed roles in
// context. Unauthenticated requests get login-redirect semantics; wrong
// roles get /forbidden semantics.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				redirectToLogin(w, r)
				return
			}

			if _, has := set[strings.ToLower(u.Role)]; !has {
				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", "/forbidden")
					w.WriteHeader(http.StatusForbidden)
					return
				}
				if wantsHTML(r) {
					http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Helpers                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(currentURI(r))

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login?return="+ret)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if wantsHTML(r) {
		http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	// Very light heuristic: treat it as HTML if it's HTMX or Accepts text/html.
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html")
}

func currentURI(r *http.Request) string {
	// Preserve path + query as a return param.
	u := *r.URL
	return u.RequestURI()
}

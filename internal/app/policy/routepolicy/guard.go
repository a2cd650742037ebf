package routepolicy

import (
	"net/http"
	"net/url"

	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/session"
)

// Guard enforces Evaluate on every request under a protected subtree.
// It reads the session user placed in context by
// SessionManager.LoadSessionUser, pulls the current snapshot from the
// store, and either passes the request through or redirects. Typing a
// URL directly gets the same treatment as clicking a menu entry.
func Guard(store *session.Store, requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			su, ok := auth.CurrentUser(r)
			if !ok {
				redirect(w, r, LoginPath+"?return="+url.QueryEscape(r.URL.RequestURI()))
				return
			}

			snap := store.Snapshot(r.Context(), su.Creds)
			if snap.User == nil && su.User != nil {
				// The upstream fetch failed or the session expired
				// mid-flight. The cookie copy is the last known state;
				// evaluate with it rather than bouncing the user to
				// login on a transient upstream error.
				snap = session.Snapshot{User: su.User}
			}

			d := Evaluate(snap, r.URL.Path, requiredRole)
			switch {
			case d.Loading:
				serveLoading(w)
			case d.Redirect != "":
				redirect(w, r, d.Redirect)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// serveLoading answers a deferred decision with a self-refreshing
// placeholder instead of committing to render or redirect.
func serveLoading(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Refresh", "1")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("<!doctype html><title>Loading</title><p>Loading your account…</p>"))
}

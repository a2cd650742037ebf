// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/authz"
	"github.com/dalemusser/barangayhub/internal/app/system/navigation"
	"github.com/dalemusser/barangayhub/internal/app/system/session"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// DefaultSiteName is used until a deployment overrides it.
const DefaultSiteName = "BarangayHub"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/default-back"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn bool
	Role       string
	UserName   string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF protection
	CSRFToken string

	// Sidebar entries for the current role, gated by residency state.
	Menu []navigation.Entry
}

// sessions is set by Init and used to read the cached snapshot for menu
// rendering without blocking on the upstream API.
var sessions *session.Store

var siteName = DefaultSiteName

// Init wires the session store into view-model construction. Call once
// at startup from bootstrap.
func Init(store *session.Store, name string) {
	sessions = store
	if name != "" {
		siteName = name
	}
}

// NewBaseVM creates a fully populated BaseVM for a page. The menu is
// built from the cached session snapshot; a cache miss renders the menu
// fail-open, which is fine because the route guard still enforces.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)

	vm := BaseVM{
		SiteName:    siteName,
		IsLoggedIn:  signedIn,
		Role:        role,
		UserName:    name,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}

	if signedIn && sessions != nil {
		if su, ok := auth.CurrentUser(r); ok {
			snap := sessions.Cached(su.Creds)
			if snap.Loading && su.User != nil {
				// Cookie copy stands in until the first fetch lands.
				snap = session.Snapshot{User: su.User}
			}
			vm.Menu = navigation.Menu(snap, role)
		}
	}
	return vm
}

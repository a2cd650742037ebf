// Package routepolicy decides, for a signed-in (or absent) user and a
// requested path, whether the page renders or the request is redirected
// somewhere safer. Resident accounts carry extra residency rules: a
// denied verification blocks everything except the denial page, an
// incomplete or unverified profile funnels the resident back to the
// profile editor, and a small allow-list of pages stays reachable so a
// restricted resident can still see why they are restricted.
package routepolicy

import (
	"strings"

	"github.com/dalemusser/barangayhub/internal/app/system/flags"
	"github.com/dalemusser/barangayhub/internal/app/system/session"
	"github.com/dalemusser/barangayhub/internal/domain/models"
)

// Well-known destinations the evaluator redirects to.
const (
	LoginPath   = "/login"
	HomePath    = "/dashboard"
	ProfilePath = "/residents/profile"
	DeniedPath  = "/residency-denied"
	UploadPath  = "/residents/residencyVerification"
)

// residentAllowList holds resident pages that stay reachable even when
// the profile is incomplete or residency is unverified. A denied
// verification still wins over this list.
var residentAllowList = map[string]struct{}{
	"/residents/dashboard":           {},
	"/residents/projects":            {},
	"/residents/requestDocuments":    {},
	"/residents/requestAssets":       {},
	"/residents/blotterAppointment":  {},
	"/residents/organizationalChart": {},
}

// Decision is the outcome of one policy evaluation. Exactly one of the
// three states holds: still loading, redirect to Redirect, or render.
type Decision struct {
	Loading  bool
	Redirect string
}

// Render reports whether the requested page should be served as-is.
func (d Decision) Render() bool { return !d.Loading && d.Redirect == "" }

// Evaluate applies the access rules in strict order and returns the
// first decision that matches. requiredRole may be empty when the
// destination is open to any signed-in role.
func Evaluate(snap session.Snapshot, path, requiredRole string) Decision {
	if snap.Loading {
		return Decision{Loading: true}
	}
	if snap.User == nil {
		return Decision{Redirect: LoginPath}
	}

	u := snap.User
	if u.IsResident() {
		if d, done := evaluateResident(u.Profile, path); done {
			return d
		}
	}

	if requiredRole != "" && !strings.EqualFold(u.Role, requiredRole) {
		return Decision{Redirect: HomePath}
	}
	return Decision{}
}

// evaluateResident runs the residency rules. done=false means the
// rules pass through to the role check.
func evaluateResident(p *models.Profile, path string) (Decision, bool) {
	// A missing profile is treated as maximally incomplete.
	if p != nil && p.IsDenied() {
		if path == DeniedPath {
			return Decision{}, false
		}
		return Decision{Redirect: DeniedPath}, true
	}
	if _, ok := residentAllowList[path]; ok {
		return Decision{}, false
	}
	// The profile editor and the upload form are the pages that lift
	// the restriction, so they must stay reachable for the restricted.
	if path == ProfilePath || path == UploadPath {
		return Decision{}, false
	}
	if !ProfileComplete(p) {
		return Decision{Redirect: ProfilePath}, true
	}
	if !p.IsApproved() {
		return Decision{Redirect: ProfilePath}, true
	}
	return Decision{}, false
}

// ProfileComplete reports whether a resident profile counts as complete:
// either the backend's explicit flag is truthy or every required field
// is filled in. The Navigation Gate shares this predicate so the menu
// and the route guard never disagree.
func ProfileComplete(p *models.Profile) bool {
	if p == nil {
		return false
	}
	return flags.RawTrue(p.ProfileCompleted) || p.AllFieldsPresent()
}

// InterceptTarget picks where a blocked resident is sent when they
// activate a page they cannot use yet. Denial outranks a missing
// verification image, which outranks plain profile repair.
func InterceptTarget(p *models.Profile) string {
	switch {
	case p != nil && p.IsDenied():
		return DeniedPath
	case p == nil || !p.HasVerificationImage():
		return UploadPath
	default:
		return ProfilePath
	}
}

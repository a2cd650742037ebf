// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/domain/models"
)

// UserCtx returns the user's role (lowercased), name, id, and a found
// flag. If no user is present in context it returns "visitor", "", "",
// false, so callers can trust that ok=true means a valid authenticated
// user.
func UserCtx(r *http.Request) (role string, name string, userID string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", "", false
	}
	return strings.ToLower(user.Role), user.Name, user.ID, true
}

// CurrentProfile returns the residency profile from the session
// snapshot, or nil when signed out or no profile exists yet.
func CurrentProfile(r *http.Request) *models.Profile {
	user, ok := auth.CurrentUser(r)
	if !ok || user.User == nil {
		return nil
	}
	return user.User.Profile
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// IsResident reports whether the current request's user is a resident.
func IsResident(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleResidents
}

// IsStaff reports whether the current request's user is barangay staff.
func IsStaff(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleStaff
}

// IsTreasurer reports whether the current request's user is the treasurer.
func IsTreasurer(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleTreasurer
}

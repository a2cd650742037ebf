// internal/domain/models/user.go
package models

import "strings"

// DefaultSiteName is used when no site settings are available.
const DefaultSiteName = "BarangayHub"

// Role values for User.Role. The set is closed: the civic API never
// returns anything outside it, and anything unrecognized is treated as
// no role at all.
const (
	RoleAdmin     = "admin"
	RoleResidents = "residents"
	RoleStaff     = "staff"
	RoleTreasurer = "treasurer"
)

// ValidRoles lists every role this application understands.
var ValidRoles = []string{RoleAdmin, RoleResidents, RoleStaff, RoleTreasurer}

// IsValidRole reports whether role (case-insensitively) is one of the
// closed set of roles.
func IsValidRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User is the authenticated identity as returned by the civic API,
// normalized so that profile data is always reachable as User.Profile
// regardless of the response shape that carried it.
//
// Lifecycle: created by a successful login/fetch, replaced wholesale on
// every refresh, and cleared on logout or authentication failure. No code
// mutates an existing User in place.
type User struct {
	ID      string   `json:"id"`
	Name    string   `json:"name,omitempty"`
	Email   string   `json:"email,omitempty"`
	Role    string   `json:"role"`
	Profile *Profile `json:"profile,omitempty"`
}

// IsResident reports whether the user carries the resident role.
func (u *User) IsResident() bool {
	return u != nil && strings.EqualFold(u.Role, RoleResidents)
}

// HasRole reports whether the user's role matches role, ignoring case.
func (u *User) HasRole(role string) bool {
	return u != nil && strings.EqualFold(u.Role, role)
}

package navigation

import (
	"github.com/dalemusser/barangayhub/internal/app/policy/routepolicy"
	"github.com/dalemusser/barangayhub/internal/app/system/flags"
	"github.com/dalemusser/barangayhub/internal/app/system/session"
	"github.com/dalemusser/barangayhub/internal/domain/models"
)

// Entry is one menu item as rendered into the sidebar template.
//
// A disabled entry still renders but its link points at Intercept
// instead of Path, so activating it lands the resident on the page that
// can lift the restriction rather than the page they asked for.
type Entry struct {
	Label     string
	Path      string
	Icon      string
	Disabled  bool
	Intercept string
}

// Href returns the destination a click should actually navigate to.
func (e Entry) Href() string {
	if e.Disabled {
		return e.Intercept
	}
	return e.Path
}

var adminMenu = []Entry{
	{Label: "Dashboard", Path: "/admin/dashboard", Icon: "home"},
	{Label: "Residents", Path: "/admin/residents", Icon: "users"},
	{Label: "Households", Path: "/admin/households", Icon: "house"},
	{Label: "Residency Verification", Path: "/admin/verification", Icon: "badge-check"},
	{Label: "Announcements", Path: "/admin/announcements", Icon: "megaphone"},
	{Label: "Disaster Logs", Path: "/admin/disasters", Icon: "alert"},
	{Label: "Programs", Path: "/admin/programs", Icon: "gift"},
	{Label: "Staff Accounts", Path: "/admin/staff", Icon: "id-card"},
}

var staffMenu = []Entry{
	{Label: "Dashboard", Path: "/staff/dashboard", Icon: "home"},
	{Label: "Residents", Path: "/admin/residents", Icon: "users"},
	{Label: "Announcements", Path: "/admin/announcements", Icon: "megaphone"},
	{Label: "Disaster Logs", Path: "/admin/disasters", Icon: "alert"},
}

var treasurerMenu = []Entry{
	{Label: "Dashboard", Path: "/treasurer/dashboard", Icon: "home"},
	{Label: "Programs", Path: "/admin/programs", Icon: "gift"},
}

// residentMenu is the base resident menu before gating. Entries whose
// Path sits outside the always-reachable allow-list get disabled when
// the residency predicate fails.
var residentMenu = []Entry{
	{Label: "Dashboard", Path: "/residents/dashboard", Icon: "home"},
	{Label: "My Profile", Path: routepolicy.ProfilePath, Icon: "user"},
	{Label: "Projects", Path: "/residents/projects", Icon: "hammer"},
	{Label: "Announcements", Path: "/residents/announcements", Icon: "megaphone"},
	{Label: "Request Documents", Path: "/residents/requestDocuments", Icon: "file-text"},
	{Label: "Request Assets", Path: "/residents/requestAssets", Icon: "package"},
	{Label: "Blotter Appointment", Path: "/residents/blotterAppointment", Icon: "calendar"},
	{Label: "Organizational Chart", Path: "/residents/organizationalChart", Icon: "sitemap"},
}

var benefitsEntry = Entry{Label: "My Benefits", Path: "/residents/benefits", Icon: "heart"}

// Menu builds the entries for the given role and snapshot. Non-resident
// roles get their fixed menu. Residents get the gated menu: entries are
// disabled while the profile is incomplete or residency unapproved,
// except the profile editor which must stay reachable so the resident
// can fix the restriction.
//
// A loading snapshot fails open: the menu renders fully enabled and the
// route guard stays the enforcement point. The My Benefits entry appears
// only when the benefits flag normalizes to enabled.
func Menu(snap session.Snapshot, role string) []Entry {
	switch role {
	case models.RoleAdmin:
		return adminMenu
	case models.RoleStaff:
		return staffMenu
	case models.RoleTreasurer:
		return treasurerMenu
	case models.RoleResidents:
		return residentEntries(snap)
	default:
		return nil
	}
}

func residentEntries(snap session.Snapshot) []Entry {
	var p *models.Profile
	if snap.User != nil {
		p = snap.User.Profile
	}

	pass := snap.Loading || residencyPasses(p)
	intercept := routepolicy.InterceptTarget(p)

	entries := make([]Entry, 0, len(residentMenu)+1)
	for _, e := range residentMenu {
		if !pass && e.Path != routepolicy.ProfilePath {
			e.Disabled = true
			e.Intercept = intercept
		}
		entries = append(entries, e)
	}

	if BenefitsVisible(p) {
		b := benefitsEntry
		if !pass {
			b.Disabled = true
			b.Intercept = intercept
		}
		entries = append(entries, b)
	}
	return entries
}

// residencyPasses is the same predicate the route guard enforces:
// complete profile and approved residency.
func residencyPasses(p *models.Profile) bool {
	return routepolicy.ProfileComplete(p) && p.IsApproved()
}

// BenefitsVisible checks every encoding the backend uses for the
// benefits flag. Unparseable values count as disabled.
func BenefitsVisible(p *models.Profile) bool {
	if p == nil {
		return false
	}
	return flags.BenefitsEnabled(p.MyBenefitsEnabled) ||
		flags.BenefitsEnabled(p.MyBenefits) ||
		flags.BenefitsEnabled(p.Permissions)
}

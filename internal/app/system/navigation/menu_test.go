package navigation

import (
	"encoding/json"
	"testing"

	"github.com/dalemusser/barangayhub/internal/app/policy/routepolicy"
	"github.com/dalemusser/barangayhub/internal/app/system/session"
	"github.com/dalemusser/barangayhub/internal/domain/models"
)

func approvedProfile() *models.Profile {
	return &models.Profile{
		ResidentsID:        "R-1",
		FirstName:          "Ana",
		LastName:           "Reyes",
		BirthDate:          "1990-01-01",
		Email:              "ana@example.ph",
		ContactNumber:      "0917",
		Sex:                "F",
		CivilStatus:        "single",
		Religion:           "none",
		FullAddress:        "Purok 1",
		YearsInBarangay:    "5",
		VoterStatus:        "registered",
		VerificationStatus: models.VerificationApproved,
		VerificationImage:  "uploads/r-1.jpg",
	}
}

func residentSnap(p *models.Profile) session.Snapshot {
	return session.Snapshot{User: &models.User{ID: "1", Role: models.RoleResidents, Profile: p}}
}

func findEntry(entries []Entry, label string) (Entry, bool) {
	for _, e := range entries {
		if e.Label == label {
			return e, true
		}
	}
	return Entry{}, false
}

func TestMenu_ApprovedResidentFullyEnabled(t *testing.T) {
	entries := Menu(residentSnap(approvedProfile()), models.RoleResidents)
	for _, e := range entries {
		if e.Disabled {
			t.Errorf("%s is disabled for an approved complete resident", e.Label)
		}
	}
}

func TestMenu_UnverifiedResidentDisabledExceptProfile(t *testing.T) {
	p := approvedProfile()
	p.VerificationStatus = models.VerificationPending

	entries := Menu(residentSnap(p), models.RoleResidents)
	for _, e := range entries {
		if e.Path == routepolicy.ProfilePath {
			if e.Disabled {
				t.Error("profile entry must stay enabled")
			}
			continue
		}
		if !e.Disabled {
			t.Errorf("%s should be disabled while unverified", e.Label)
		}
	}
}

func TestMenu_DisabledEntryRedirectPriority(t *testing.T) {
	denied := approvedProfile()
	denied.VerificationStatus = models.VerificationDenied

	noImage := approvedProfile()
	noImage.VerificationStatus = models.VerificationPending
	noImage.VerificationImage = ""

	pendingWithImage := approvedProfile()
	pendingWithImage.VerificationStatus = models.VerificationPending

	tests := []struct {
		name    string
		profile *models.Profile
		want    string
	}{
		{"denied routes to the denial page", denied, routepolicy.DeniedPath},
		{"missing image routes to the upload page", noImage, routepolicy.UploadPath},
		{"pending with image routes to the profile editor", pendingWithImage, routepolicy.ProfilePath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Menu(residentSnap(tt.profile), models.RoleResidents)
			e, ok := findEntry(entries, "Dashboard")
			if !ok || !e.Disabled {
				t.Fatalf("expected a disabled Dashboard entry, got %+v", e)
			}
			if e.Href() != tt.want {
				t.Errorf("Href() = %q, want %q", e.Href(), tt.want)
			}
		})
	}
}

func TestMenu_LoadingSnapshotFailsOpen(t *testing.T) {
	entries := Menu(session.Snapshot{Loading: true}, models.RoleResidents)
	if len(entries) == 0 {
		t.Fatal("expected a menu while loading")
	}
	for _, e := range entries {
		if e.Disabled {
			t.Errorf("%s disabled during loading; rendering must fail open", e.Label)
		}
	}
}

func TestMenu_BenefitsEntryGatedByFlag(t *testing.T) {
	encodings := []json.RawMessage{
		json.RawMessage(`true`),
		json.RawMessage(`1`),
		json.RawMessage(`"1"`),
		json.RawMessage(`{"my_benefits": true}`),
		json.RawMessage(`"{\"my_benefits\": true}"`),
	}
	for _, enc := range encodings {
		p := approvedProfile()
		p.MyBenefits = enc
		entries := Menu(residentSnap(p), models.RoleResidents)
		if _, ok := findEntry(entries, "My Benefits"); !ok {
			t.Errorf("encoding %s: My Benefits entry missing", enc)
		}
	}

	p := approvedProfile()
	p.MyBenefits = json.RawMessage(`"not json at all {{{"`)
	entries := Menu(residentSnap(p), models.RoleResidents)
	if _, ok := findEntry(entries, "My Benefits"); ok {
		t.Error("unparseable flag must hide the My Benefits entry")
	}
}

func TestMenu_FixedRoleMenus(t *testing.T) {
	if entries := Menu(session.Snapshot{}, models.RoleAdmin); len(entries) == 0 {
		t.Error("admin menu is empty")
	}
	if entries := Menu(session.Snapshot{}, models.RoleStaff); len(entries) == 0 {
		t.Error("staff menu is empty")
	}
	if entries := Menu(session.Snapshot{}, models.RoleTreasurer); len(entries) == 0 {
		t.Error("treasurer menu is empty")
	}
	if entries := Menu(session.Snapshot{}, "visitor"); entries != nil {
		t.Errorf("visitor menu = %v, want nil", entries)
	}
}

// internal/domain/models/profile.go
package models

import (
	"encoding/json"
	"strings"
)

// Verification status values for Profile.VerificationStatus.
// An empty status is treated the same as pending: the resident has not
// been reviewed yet.
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationDenied   = "denied"
)

// Profile holds the residency record attached to a user.
//
// The civic API is loose about field encodings: ProfileCompleted can be a
// bool, a number, or a string, and the permissions/benefits fields can be
// anything from a bool to a JSON-stringified object. The raw values are
// kept as json.RawMessage and normalized through the flags package at the
// point of use, never sniffed elsewhere.
type Profile struct {
	ResidentsID     string `json:"residents_id,omitempty"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	BirthDate       string `json:"birth_date"`
	Email           string `json:"email"`
	ContactNumber   string `json:"contact_number"`
	Sex             string `json:"sex"`
	CivilStatus     string `json:"civil_status"`
	Religion        string `json:"religion"`
	FullAddress     string `json:"full_address"`
	YearsInBarangay string `json:"years_in_barangay"`
	VoterStatus     string `json:"voter_status"`
	Avatar          string `json:"avatar,omitempty"`

	// ProfileCompleted is the backend's explicit completeness flag.
	// Accepted truthy encodings: true, 1, "1".
	ProfileCompleted json.RawMessage `json:"profile_completed,omitempty"`

	// VerificationStatus is "", "pending", "approved", or "denied".
	VerificationStatus string `json:"verification_status,omitempty"`

	// VerificationImage is the stored path of the uploaded
	// proof-of-residency document, if any.
	VerificationImage string `json:"residency_verification_image,omitempty"`

	// DenialReason is free text present only when the verification was
	// denied. It may contain markup and must be sanitized before display.
	DenialReason string `json:"denial_reason,omitempty"`

	// Authorization flags in whatever encoding the backend chose.
	Permissions       json.RawMessage `json:"permissions,omitempty"`
	MyBenefitsEnabled json.RawMessage `json:"my_benefits_enabled,omitempty"`
	MyBenefits        json.RawMessage `json:"my_benefits,omitempty"`
}

// requiredFields are the profile fields that must all be non-empty for a
// profile to count as complete when the backend did not set the explicit
// completeness flag.
func (p *Profile) requiredFields() []string {
	return []string{
		p.FirstName,
		p.LastName,
		p.BirthDate,
		p.Email,
		p.ContactNumber,
		p.Sex,
		p.CivilStatus,
		p.Religion,
		p.FullAddress,
		p.YearsInBarangay,
		p.VoterStatus,
	}
}

// AllFieldsPresent reports whether every required residency field is
// non-empty. This is the derived half of the completeness check; the
// explicit flag is normalized by the caller (see flags.True).
func (p *Profile) AllFieldsPresent() bool {
	if p == nil {
		return false
	}
	for _, f := range p.requiredFields() {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

// Status returns the verification status with empty normalized to pending.
func (p *Profile) Status() string {
	if p == nil {
		return VerificationPending
	}
	s := strings.ToLower(strings.TrimSpace(p.VerificationStatus))
	if s == "" {
		return VerificationPending
	}
	return s
}

// IsApproved reports whether residency verification has been approved.
// An approved resident is never routed back to the verification upload
// flow.
func (p *Profile) IsApproved() bool {
	return p.Status() == VerificationApproved
}

// IsDenied reports whether residency verification has been denied.
func (p *Profile) IsDenied() bool {
	return p.Status() == VerificationDenied
}

// HasVerificationImage reports whether a proof-of-residency document has
// been uploaded.
func (p *Profile) HasVerificationImage() bool {
	return p != nil && strings.TrimSpace(p.VerificationImage) != ""
}

// FullName joins the first and last name for display.
func (p *Profile) FullName() string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

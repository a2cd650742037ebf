// internal/app/client/civic/admin.go
//
// Admin- and staff-facing upstream calls: resident and household
// records, residency verification review, announcement management,
// disaster logs, social-service programs, and staff accounts.
package civic

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dalemusser/barangayhub/internal/domain/models"
)

// ResidentRecord is a row in the admin resident ledger.
type ResidentRecord struct {
	ID                 string `json:"id"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	FullAddress        string `json:"full_address,omitempty"`
	ContactNumber      string `json:"contact_number,omitempty"`
	VerificationStatus string `json:"verification_status,omitempty"`
	VerificationImage  string `json:"residency_verification_image,omitempty"`
	HouseholdID        string `json:"household_id,omitempty"`
}

// Household groups residents under one dwelling.
type Household struct {
	ID        string `json:"id"`
	HeadName  string `json:"head_name"`
	Address   string `json:"address"`
	Members   int    `json:"members"`
	Purok     string `json:"purok,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// DisasterLog is a disaster/emergency incident entry.
type DisasterLog struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Location   string `json:"location,omitempty"`
	Details    string `json:"details,omitempty"`
	Severity   string `json:"severity,omitempty"`
	OccurredAt string `json:"occurred_at,omitempty"`
}

// Program is a social-service program with its beneficiary count.
type Program struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Beneficiaries int    `json:"beneficiaries"`
	Status        string `json:"status,omitempty"`
}

// Beneficiary links a resident to a program.
type Beneficiary struct {
	ID         string `json:"id"`
	ProgramID  string `json:"program_id"`
	ResidentID string `json:"resident_id"`
	Name       string `json:"name"`
	EnrolledAt string `json:"enrolled_at,omitempty"`
}

// StaffAccount is a barangay staff/treasurer login managed by the admin.
type StaffAccount struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status,omitempty"`
}

// Residents lists resident records for the admin ledger.
func (c *Client) Residents(ctx context.Context, creds Credentials) ([]ResidentRecord, error) {
	var out []ResidentRecord
	err := c.getJSON(ctx, "/admin/residents", creds, &out)
	return out, err
}

// PendingVerifications lists residents awaiting residency review.
func (c *Client) PendingVerifications(ctx context.Context, creds Credentials) ([]ResidentRecord, error) {
	var out []ResidentRecord
	err := c.getJSON(ctx, "/admin/residency-verifications", creds, &out)
	return out, err
}

// ReviewVerification approves or denies a resident's residency
// verification. status must be "approved" or "denied"; reason is
// required for denials and ignored otherwise.
func (c *Client) ReviewVerification(ctx context.Context, creds Credentials, residentID, status, reason string) error {
	if status != models.VerificationApproved && status != models.VerificationDenied {
		return fmt.Errorf("civic: invalid verification status %q", status)
	}
	form := url.Values{}
	form.Set("verification_status", status)
	if status == models.VerificationDenied {
		form.Set("denial_reason", reason)
	}
	return c.postForm(ctx, "/admin/residency-verifications/"+url.PathEscape(residentID), creds, form, nil)
}

// Households lists household records.
func (c *Client) Households(ctx context.Context, creds Credentials) ([]Household, error) {
	var out []Household
	err := c.getJSON(ctx, "/admin/households", creds, &out)
	return out, err
}

// CreateAnnouncement posts a new barangay announcement.
func (c *Client) CreateAnnouncement(ctx context.Context, creds Credentials, form url.Values) error {
	return c.postForm(ctx, "/admin/announcements", creds, form, nil)
}

// DisasterLogs lists disaster/emergency incidents.
func (c *Client) DisasterLogs(ctx context.Context, creds Credentials) ([]DisasterLog, error) {
	var out []DisasterLog
	err := c.getJSON(ctx, "/admin/disaster-logs", creds, &out)
	return out, err
}

// CreateDisasterLog records a new incident.
func (c *Client) CreateDisasterLog(ctx context.Context, creds Credentials, form url.Values) error {
	return c.postForm(ctx, "/admin/disaster-logs", creds, form, nil)
}

// Programs lists social-service programs.
func (c *Client) Programs(ctx context.Context, creds Credentials) ([]Program, error) {
	var out []Program
	err := c.getJSON(ctx, "/admin/programs", creds, &out)
	return out, err
}

// ProgramBeneficiaries lists beneficiaries enrolled in a program.
func (c *Client) ProgramBeneficiaries(ctx context.Context, creds Credentials, programID string) ([]Beneficiary, error) {
	var out []Beneficiary
	err := c.getJSON(ctx, "/admin/programs/"+url.PathEscape(programID)+"/beneficiaries", creds, &out)
	return out, err
}

// EnrollBeneficiary enrolls a resident into a program.
func (c *Client) EnrollBeneficiary(ctx context.Context, creds Credentials, programID string, form url.Values) error {
	return c.postForm(ctx, "/admin/programs/"+url.PathEscape(programID)+"/beneficiaries", creds, form, nil)
}

// Staff lists staff and treasurer accounts.
func (c *Client) Staff(ctx context.Context, creds Credentials) ([]StaffAccount, error) {
	var out []StaffAccount
	err := c.getJSON(ctx, "/admin/staff", creds, &out)
	return out, err
}

// CreateStaff provisions a staff or treasurer account.
func (c *Client) CreateStaff(ctx context.Context, creds Credentials, form url.Values) error {
	return c.postForm(ctx, "/admin/staff", creds, form, nil)
}

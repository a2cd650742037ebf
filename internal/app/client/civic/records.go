// internal/app/client/civic/records.go
//
// Thin typed calls for the resident-facing record endpoints. These are
// deliberately boring: the upstream owns all validation and state; this
// side only carries forms over and lists back.
package civic

import (
	"context"
	"net/url"
)

// Announcement is a barangay-wide notice. Body may contain upstream
// markup and must be sanitized before rendering.
type Announcement struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Type     string `json:"type,omitempty"` // info, warning, critical
	PostedAt string `json:"posted_at,omitempty"`
}

// Project is an entry on the barangay projects page.
type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	StartedAt   string `json:"started_at,omitempty"`
}

// Official is a row on the organizational chart.
type Official struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Contact  string `json:"contact,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// DocumentRequest is a resident's certificate/document request.
type DocumentRequest struct {
	ID           string `json:"id"`
	DocumentType string `json:"document_type"`
	Purpose      string `json:"purpose,omitempty"`
	Status       string `json:"status,omitempty"`
	RequestedAt  string `json:"requested_at,omitempty"`
}

// AssetRequest is a resident's request to borrow barangay assets
// (chairs, tents, sound system).
type AssetRequest struct {
	ID          string `json:"id"`
	AssetName   string `json:"asset_name"`
	Quantity    int    `json:"quantity"`
	UseDate     string `json:"use_date,omitempty"`
	Status      string `json:"status,omitempty"`
	RequestedAt string `json:"requested_at,omitempty"`
}

// BlotterAppointment is a scheduled complaint hearing slot.
type BlotterAppointment struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	Details     string `json:"details,omitempty"`
	Scheduled   string `json:"scheduled_at,omitempty"`
	Status      string `json:"status,omitempty"`
	RequestedAt string `json:"requested_at,omitempty"`
}

// Benefit is a social-service benefit granted to the resident.
type Benefit struct {
	ID          string `json:"id"`
	Program     string `json:"program"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	GrantedAt   string `json:"granted_at,omitempty"`
}

// Announcements lists active barangay announcements.
func (c *Client) Announcements(ctx context.Context, creds Credentials) ([]Announcement, error) {
	var out []Announcement
	err := c.getJSON(ctx, "/announcements", creds, &out)
	return out, err
}

// Projects lists barangay projects.
func (c *Client) Projects(ctx context.Context, creds Credentials) ([]Project, error) {
	var out []Project
	err := c.getJSON(ctx, "/projects", creds, &out)
	return out, err
}

// OrganizationalChart lists the barangay officials.
func (c *Client) OrganizationalChart(ctx context.Context, creds Credentials) ([]Official, error) {
	var out []Official
	err := c.getJSON(ctx, "/organizational-chart", creds, &out)
	return out, err
}

// DocumentRequests lists the caller's document requests.
func (c *Client) DocumentRequests(ctx context.Context, creds Credentials) ([]DocumentRequest, error) {
	var out []DocumentRequest
	err := c.getJSON(ctx, "/residents/document-requests", creds, &out)
	return out, err
}

// CreateDocumentRequest submits a new document request.
func (c *Client) CreateDocumentRequest(ctx context.Context, creds Credentials, form url.Values) error {
	return c.postForm(ctx, "/residents/document-requests", creds, form, nil)
}

// AssetRequests lists the caller's asset requests.
func (c *Client) AssetRequests(ctx context.Context, creds Credentials) ([]AssetRequest, error) {
	var out []AssetRequest
	err := c.getJSON(ctx, "/residents/asset-requests", creds, &out)
	return out, err
}

// CreateAssetRequest submits a new asset borrow request.
func (c *Client) CreateAssetRequest(ctx context.Context, creds Credentials, form url.Values) error {
	return c.postForm(ctx, "/residents/asset-requests", creds, form, nil)
}

// BlotterAppointments lists the caller's blotter appointments.
func (c *Client) BlotterAppointments(ctx context.Context, creds Credentials) ([]BlotterAppointment, error) {
	var out []BlotterAppointment
	err := c.getJSON(ctx, "/residents/blotter-appointments", creds, &out)
	return out, err
}

// CreateBlotterAppointment requests a complaint hearing slot.
func (c *Client) CreateBlotterAppointment(ctx context.Context, creds Credentials, form url.Values) error {
	return c.postForm(ctx, "/residents/blotter-appointments", creds, form, nil)
}

// Benefits lists the caller's granted benefits. Only meaningful when the
// profile's benefits flag normalizes to enabled.
func (c *Client) Benefits(ctx context.Context, creds Credentials) ([]Benefit, error) {
	var out []Benefit
	err := c.getJSON(ctx, "/residents/my-benefits", creds, &out)
	return out, err
}

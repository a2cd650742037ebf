// internal/app/client/civic/profile.go
package civic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/dalemusser/barangayhub/internal/domain/models"
	"go.uber.org/zap"
)

// FetchUser retrieves the authenticated identity and residency profile
// from GET /profile and normalizes it into a single User with an
// embedded Profile.
//
// The upstream has three observed response shapes:
//
//	{ "user": {...}, "profile": {...} }     (split envelope)
//	{ "user": {..., "profile": {...}} }     (nested under user)
//	{ ...profile fields... }                (bare profile)
//
// All of them come out of here as User{Profile: ...}. Shape-sniffing is
// confined to this function.
func (c *Client) FetchUser(ctx context.Context, creds Credentials) (*models.User, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/profile", creds, &raw); err != nil {
		return nil, err
	}

	u, err := normalizeProfilePayload(raw)
	if err != nil {
		c.log.Warn("unrecognized /profile payload shape", zap.Error(err))
		return nil, err
	}
	return u, nil
}

// FetchIdentity retrieves the bare identity from GET /user. It is the
// fallback when /profile 404s for an authenticated account that has not
// created a profile yet.
func (c *Client) FetchIdentity(ctx context.Context, creds Credentials) (*models.User, error) {
	var envelope struct {
		User *models.User `json:"user"`
	}
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/user", creds, &raw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.User != nil {
		return envelope.User, nil
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil || u.ID == "" {
		return nil, fmt.Errorf("civic: unrecognized /user payload")
	}
	return &u, nil
}

// UpdateProfile submits edited residency fields. The upstream replaces
// the stored profile and the caller is expected to force a session
// refresh afterwards.
func (c *Client) UpdateProfile(ctx context.Context, creds Credentials, form url.Values) error {
	return c.postForm(ctx, "/profile/update", creds, form, nil)
}

func normalizeProfilePayload(raw []byte) (*models.User, error) {
	// Shape 1 and 2: an envelope carrying "user" (and possibly a
	// sibling "profile").
	var env struct {
		User    *models.User    `json:"user"`
		Profile *models.Profile `json:"profile"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && env.User != nil {
		u := env.User
		if u.Profile == nil && env.Profile != nil {
			u.Profile = env.Profile
		}
		return u, nil
	}

	// Shape 2 variant: user fields at the top level, profile nested.
	var flat models.User
	if err := json.Unmarshal(raw, &flat); err == nil && flat.ID != "" && flat.Role != "" {
		if flat.Profile == nil {
			// Some call sites inline the profile fields beside the
			// user fields; pick them up if any are present.
			var inline models.Profile
			if err := json.Unmarshal(raw, &inline); err == nil && !profileIsEmpty(&inline) {
				flat.Profile = &inline
			}
		}
		return &flat, nil
	}

	// Shape 3: a bare profile with no user wrapper. The resident id is
	// the only identity the payload carries.
	var p models.Profile
	if err := json.Unmarshal(raw, &p); err == nil && !profileIsEmpty(&p) {
		return &models.User{
			ID:      p.ResidentsID,
			Name:    p.FullName(),
			Email:   p.Email,
			Role:    models.RoleResidents,
			Profile: &p,
		}, nil
	}

	return nil, fmt.Errorf("civic: unrecognized /profile payload")
}

func profileIsEmpty(p *models.Profile) bool {
	return p.FirstName == "" && p.LastName == "" && p.ResidentsID == "" &&
		p.Email == "" && p.VerificationStatus == "" && p.FullAddress == ""
}

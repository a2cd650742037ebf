// Package resources embeds the templates shared by every page: the
// page_head/page_foot layout with the topbar and the role sidebar.
// Feature packages embed their own page templates and assume these
// shared defines exist.
package resources

import (
	"embed"
	"sync"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

var registerOnce sync.Once

// LoadSharedTemplates registers the layout and sidebar set. Called once
// from the startup hook; safe to call again from tests.
func LoadSharedTemplates() {
	registerOnce.Do(func() {
		templates.Register(templates.Set{
			Name:     "shared",
			FS:       FS,
			Patterns: []string{"templates/*.gohtml"},
		})
	})
}

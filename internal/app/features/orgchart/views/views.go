// internal/app/features/orgchart/views/views.go
package orgchartviews

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "orgchart",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}

// internal/app/features/residency/views/views.go
package residencyviews

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "residency",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}

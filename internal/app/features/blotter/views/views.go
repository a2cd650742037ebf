// internal/app/features/blotter/views/views.go
package blotterviews

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "blotter",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}

// Package htmlsanitize strips unsafe markup from upstream HTML before
// it reaches a template. Announcement bodies and verification denial
// reasons arrive from the civic API with markup and are never trusted.
package htmlsanitize

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	return p
}

// Sanitize returns the input with unsafe elements and attributes
// removed. Safe formatting (paragraphs, emphasis, links, tables) is
// preserved.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// SanitizeHTML sanitizes and marks the result safe for direct template
// interpolation.
func SanitizeHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

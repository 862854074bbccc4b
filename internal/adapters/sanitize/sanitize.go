// Package sanitize normalizes untrusted form input before it is persisted.
// Plain-text fields lose all markup, rich-text fields keep a safe HTML
// subset, and link fields must be absolute http(s) URLs.
package sanitize

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"speakeradmin/internal/domain"
)

var _ domain.Sanitizer = (*Sanitizer)(nil)

// Sanitizer holds the reusable bluemonday policies. Policies are safe for
// concurrent use, so one Sanitizer serves the whole process.
type Sanitizer struct {
	strict *bluemonday.Policy
	rich   *bluemonday.Policy
}

// New returns a Sanitizer with a strict policy for plain text and a UGC
// policy for rich-text fields.
func New() *Sanitizer {
	return &Sanitizer{
		strict: bluemonday.StrictPolicy(),
		rich:   bluemonday.UGCPolicy(),
	}
}

// Text strips all markup, unescapes entities, and collapses whitespace runs
// (including line breaks) to single spaces.
func (s *Sanitizer) Text(in string) string {
	out := html.UnescapeString(s.strict.Sanitize(in))
	return strings.Join(strings.Fields(out), " ")
}

// RichText keeps the safe HTML subset of the UGC policy and trims the result.
func (s *Sanitizer) RichText(in string) string {
	return strings.TrimSpace(s.rich.Sanitize(in))
}

// URL validates in as an absolute http(s) URL and returns it trimmed, or ""
// when it does not qualify.
func (s *Sanitizer) URL(in string) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return ""
	}
	u, err := url.Parse(in)
	if err != nil {
		return ""
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	return u.String()
}

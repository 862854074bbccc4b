package domain

// Sanitizer cleans untrusted request input before it is stored. Text is for
// plain-text fields, RichText for fields that keep a safe HTML subset, and
// URL for link fields that must be absolute http(s) URLs.
type Sanitizer interface {
	Text(in string) string
	RichText(in string) string
	URL(in string) string
}

package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	s := New()

	assert.Equal(t, "Jane Doe", s.Text("  Jane   Doe  "))
	assert.Equal(t, "Jane Doe", s.Text("<b>Jane</b> Doe"))
	assert.Equal(t, "alert(1)", s.Text("<script>alert(1)</script>"))
	assert.Equal(t, "a b", s.Text("a\n\nb"))
	assert.Equal(t, "", s.Text("   "))
}

func TestRichText(t *testing.T) {
	s := New()

	assert.Equal(t, "<p>Hi</p>", s.RichText("<p>Hi</p>"))
	assert.Equal(t, "<p>Hi</p>", s.RichText("  <p>Hi</p>  "))
	assert.NotContains(t, s.RichText(`<p onclick="evil()">Hi</p><script>x</script>`), "script")
	assert.NotContains(t, s.RichText(`<p onclick="evil()">Hi</p>`), "onclick")
}

func TestURL(t *testing.T) {
	s := New()

	assert.Equal(t, "https://example.com/a", s.URL(" https://example.com/a "))
	assert.Equal(t, "http://example.com", s.URL("http://example.com"))
	assert.Equal(t, "", s.URL("javascript:alert(1)"))
	assert.Equal(t, "", s.URL("ftp://example.com/file"))
	assert.Equal(t, "", s.URL("/relative/path"))
	assert.Equal(t, "", s.URL(""))
}

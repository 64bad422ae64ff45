package parser

import (
	"strings"
	"testing"
)

func TestExtractReadableArticle(t *testing.T) {
	html := `<html><body>
<nav><a href="/">Home</a><a href="/jobs">Jobs</a></nav>
<article>
<h1>Software Engineer</h1>
<p>We are hiring a software engineer to build and operate our payments
platform. You will design APIs, review code, and mentor junior engineers.
The role involves close collaboration with product and design teams across
multiple time zones, and ownership of services from prototype to
production.</p>
<p>Requirements include five years of backend experience and fluency in at
least one systems language.</p>
</article>
<footer>© Acme Corp</footer>
</body></html>`

	got := ExtractReadable(html, "https://example.com/jobs/1")

	if !strings.Contains(got.Text, "payments") {
		t.Errorf("Text lost article content: %q", got.Text)
	}
	if got.Markdown == "" {
		t.Error("Markdown is empty for a well-formed article")
	}
	if !strings.Contains(got.Markdown, "Software Engineer") {
		t.Errorf("Markdown = %q", got.Markdown)
	}
}

func TestExtractReadableFallsBackToBodyText(t *testing.T) {
	// Too little content for readability; the fallback returns the plain
	// body text with no markdown.
	html := `<html><body><span>Engineer wanted</span></body></html>`

	got := ExtractReadable(html, "https://example.com/jobs/2")

	if !strings.Contains(got.Text, "Engineer wanted") {
		t.Errorf("fallback Text = %q", got.Text)
	}
}

func TestExtractReadableEmptyInput(t *testing.T) {
	got := ExtractReadable("", "https://example.com/jobs/3")
	if got.Text != "" || got.Markdown != "" {
		t.Errorf("empty input produced %+v", got)
	}
}

func TestExtractReadableNormalizesWhitespace(t *testing.T) {
	html := `<html><body><p>spaced     out

	text</p></body></html>`

	got := ExtractReadable(html, "https://example.com/jobs/4")
	if strings.Contains(got.Text, "  ") {
		t.Errorf("Text contains runs of spaces: %q", got.Text)
	}
}

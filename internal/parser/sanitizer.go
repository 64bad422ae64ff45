package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips dangerous markup while keeping the tags and attributes
// the extraction strategies rely on (classes, ids, itemprops, data-*,
// meta content). Scraped job pages are frequently malformed; both goquery
// and bluemonday tolerate broken input without failing.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer builds the sanitization policy.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()

	// Structural tags the readability pass and the site selectors need.
	p.AllowElements("img", "h1", "h2", "h3", "article", "section", "main", "meta", "span", "div")

	// Selector-bearing attributes. Everything else is dropped.
	p.AllowAttrs("class", "id", "itemprop").Globally()
	p.AllowDataAttributes()
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowAttrs("property", "content", "name").OnElements("meta")

	// Dropped containers whose text must not leak into the output.
	p.SkipElementsContent("script", "style", "noscript", "iframe", "object", "embed")

	return &Sanitizer{policy: p}
}

// Sanitize returns HTML safe to parse and render internally. Schema.org
// JSON-LD payloads are lifted out before the policy runs (bluemonday drops
// every script) and re-injected after a round trip through encoding/json,
// which rejects non-JSON content and escapes angle brackets so nothing
// executable can survive.
func (s *Sanitizer) Sanitize(html string) string {
	blocks := extractJSONLDBlocks(html)

	clean := s.policy.Sanitize(html)

	if len(blocks) == 0 {
		return clean
	}

	var b strings.Builder
	b.WriteString(clean)
	for _, block := range blocks {
		fmt.Fprintf(&b, `<script type="application/ld+json">%s</script>`, block)
	}
	return b.String()
}

func extractJSONLDBlocks(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var blocks []string
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return
		}
		var payload any
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return
		}
		safe, err := json.Marshal(payload)
		if err != nil {
			return
		}
		blocks = append(blocks, string(safe))
	})
	return blocks
}

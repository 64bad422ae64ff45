package strategies

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobtrail-utils/pkg/models"
)

// Work-arrangement patterns for the generic strategy, grouped by category.
// Explicit remote phrasings are checked first, then hybrid, then on-site,
// then a bare "remote" mention as the weakest signal. The co-occurrence
// rule catches "remote ... days in office" style hybrid postings that
// never say the word hybrid.
var (
	remoteStrongPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)fully\s+remote`),
		regexp.MustCompile(`(?i)100%\s*remote`),
		regexp.MustCompile(`(?i)remote[- ]first`),
		regexp.MustCompile(`(?i)work\s+from\s+home`),
		regexp.MustCompile(`(?i)\bwfh\b`),
	}
	hybridPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bhybrid\b`),
		regexp.MustCompile(`(?i)flexible\s+work(?:ing)?\s+arrangement`),
	}
	onsitePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bon[- ]?site\b`),
		regexp.MustCompile(`(?i)\bin[- ]?office\b`),
		regexp.MustCompile(`(?i)must\s+be\s+located`),
		regexp.MustCompile(`(?i)relocate\s+to`),
	}
	remoteWeakPattern = regexp.MustCompile(`(?i)\bremote\b`)
	officeWord        = regexp.MustCompile(`(?i)\boffice\b`)
)

// workTypeSelectors scanned when no text pattern matched.
var workTypeSelectors = []string{
	"[class*='workplace']",
	"[class*='work-type']",
	"[class*='remote-status']",
	"[data-testid*='workplace']",
}

// detectWorkType runs the pattern cascade over the combined readable text
// and page body, then falls back to work-type-specific selectors.
func detectWorkType(doc *goquery.Document, readableText string) string {
	blob := readableText + " " + pageText(doc)

	if matchAny(remoteStrongPatterns, blob) {
		return models.WorkTypeRemote
	}
	if matchAny(hybridPatterns, blob) {
		return models.WorkTypeHybrid
	}
	if remoteWeakPattern.MatchString(blob) && officeWord.MatchString(blob) {
		return models.WorkTypeHybrid
	}
	if remoteWeakPattern.MatchString(blob) {
		return models.WorkTypeRemote
	}
	if matchAny(onsitePatterns, blob) {
		return models.WorkTypeOnSite
	}

	for _, sel := range workTypeSelectors {
		text := strings.ToLower(doc.Find(sel).Text())
		if text == "" {
			continue
		}
		if wt := detectWorkTypeSubstring(text); wt != "" {
			return wt
		}
	}
	return ""
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

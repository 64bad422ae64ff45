package strategies

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobtrail-utils/pkg/models"
	"jobtrail-utils/pkg/utils"
)

// PartialJob holds the fields one strategy managed to extract. Empty string
// means the field was not detected.
type PartialJob struct {
	Company  string
	JobTitle string
	Location string
	Salary   string
	WorkType string
}

// Strategy is the extraction contract every job-board parser implements.
type Strategy interface {
	// Name is a stable identifier surfaced in diagnostics.
	Name() string

	// CanParse reports whether this strategy handles the URL. The generic
	// strategy always returns true; it is the registry's catch-all.
	CanParse(url string) bool

	// Parse extracts whatever fields it can from the page.
	Parse(doc *goquery.Document, readableText string, url string) PartialJob
}

// NewRegistry returns the ordered strategy set. Order matters: the first
// CanParse match wins and generic sits last as the guaranteed fallback.
func NewRegistry() []Strategy {
	return []Strategy{
		&LinkedInStrategy{},
		&IndeedStrategy{},
		&GlassdoorStrategy{},
		&GreenhouseStrategy{},
		&LeverStrategy{},
		&WorkdayStrategy{},
		&GenericStrategy{},
	}
}

// Dispatch selects the first matching strategy and runs it. When a
// site-specific strategy matched, the generic strategy runs as well and
// fills any field the specific one left empty; the specific strategy's
// values always win. This hedges against site markup drift.
func Dispatch(registry []Strategy, doc *goquery.Document, readableText, url string) (PartialJob, string) {
	var selected Strategy
	for _, s := range registry {
		if s.CanParse(url) {
			selected = s
			break
		}
	}
	if selected == nil {
		selected = &GenericStrategy{}
	}

	result := selected.Parse(doc, readableText, url)

	if selected.Name() != genericName {
		generic := findGeneric(registry)
		result = merge(generic.Parse(doc, readableText, url), result)
	}

	return result, selected.Name()
}

func findGeneric(registry []Strategy) Strategy {
	for _, s := range registry {
		if s.Name() == genericName {
			return s
		}
	}
	return &GenericStrategy{}
}

// merge overlays specific onto generic field-by-field.
func merge(generic, specific PartialJob) PartialJob {
	out := generic
	if specific.Company != "" {
		out.Company = specific.Company
	}
	if specific.JobTitle != "" {
		out.JobTitle = specific.JobTitle
	}
	if specific.Location != "" {
		out.Location = specific.Location
	}
	if specific.Salary != "" {
		out.Salary = specific.Salary
	}
	if specific.WorkType != "" {
		out.WorkType = specific.WorkType
	}
	return out
}

// firstMatch walks an ordered selector fallback list and returns the first
// non-empty trimmed text match.
func firstMatch(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if text := utils.CleanText(s.Text()); text != "" {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// detectWorkTypeSubstring is the site-parser work-arrangement check:
// plain substring matching over lowercased text, remote before hybrid
// before on-site.
func detectWorkTypeSubstring(texts ...string) string {
	blob := strings.ToLower(strings.Join(texts, " "))
	switch {
	case strings.Contains(blob, "remote"):
		return models.WorkTypeRemote
	case strings.Contains(blob, "hybrid"):
		return models.WorkTypeHybrid
	case strings.Contains(blob, "on-site") || strings.Contains(blob, "onsite") || strings.Contains(blob, "on site"):
		return models.WorkTypeOnSite
	default:
		return ""
	}
}

// pageText gathers the visible body text of the document for work-type
// substring checks.
func pageText(doc *goquery.Document) string {
	return utils.CleanText(doc.Find("body").Text())
}

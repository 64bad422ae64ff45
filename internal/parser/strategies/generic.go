package strategies

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobtrail-utils/pkg/utils"
)

const genericName = "generic"

// GenericStrategy is the catch-all extractor for unknown sites and the
// gap-filler merged under every site-specific result. Per field it tries,
// in order: schema.org JSON-LD, meta tags, CSS selector candidates, a URL
// heuristic (company only) and regex patterns over the readable text.
type GenericStrategy struct{}

func (s *GenericStrategy) Name() string { return genericName }

func (s *GenericStrategy) CanParse(string) bool { return true }

func (s *GenericStrategy) Parse(doc *goquery.Document, readableText string, rawURL string) PartialJob {
	job := PartialJob{}

	if ld := extractJobPostingLD(doc); ld != nil {
		job.JobTitle = ld.Title
		job.Company = ld.Company
		job.Location = ld.Location
		job.Salary = ld.Salary
	}

	if job.Company == "" {
		job.Company = genericCompany(doc, readableText, rawURL)
	}
	if job.JobTitle == "" {
		job.JobTitle = genericTitle(doc)
	}
	if job.Location == "" {
		job.Location = genericLocation(doc, readableText)
	}
	if job.Salary == "" {
		job.Salary = genericSalary(doc, readableText)
	}

	job.WorkType = detectWorkType(doc, readableText)

	return job
}

// --- company ---

var companyMetaSelectors = []string{
	`meta[property="og:site_name"]`,
	`meta[name="application-name"]`,
	`meta[name="author"]`,
}

var companySelectors = []string{
	"[data-company]",
	".company-name",
	`[itemprop="hiringOrganization"]`,
	`[class*="company-name"]`,
	`[class*="employer"]`,
}

var companyTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:at|@|with|for|join)\s+([A-Z][A-Za-z0-9&.\- ]{1,49}?)(?:\s+(?:is|as|in|for|to)\b|[,.]|$)`),
	regexp.MustCompile(`([A-Z][A-Za-z0-9&.\- ]{1,49}?)\s+is\s+(?:hiring|looking|seeking)`),
}

// companyBlacklist rejects capitalized non-names the text patterns keep
// matching on career pages.
var companyBlacklist = map[string]bool{
	"the": true, "our": true, "this": true, "your": true,
	"about": true, "careers": true, "jobs": true, "apply": true,
}

func genericCompany(doc *goquery.Document, readableText, rawURL string) string {
	if v := metaValue(doc, companyMetaSelectors); v != "" {
		if cleaned := cleanCompanyName(v); cleaned != "" {
			return cleaned
		}
	}

	if v := selectorValue(doc, companySelectors); v != "" {
		return v
	}

	if v := companyFromHost(rawURL); v != "" {
		return v
	}

	for _, pattern := range companyTextPatterns {
		if m := pattern.FindStringSubmatch(readableText); len(m) > 1 {
			candidate := utils.CleanText(m[1])
			if candidate != "" && !companyBlacklist[strings.ToLower(candidate)] {
				return candidate
			}
		}
	}
	return ""
}

var (
	trailingSegment = regexp.MustCompile(`\s+[-|–]\s+.*$`)
	careersSuffix   = regexp.MustCompile(`(?i)\s*(careers?|jobs?)\s*$`)
)

// cleanCompanyName strips " - Careers" style suffixes from meta values and
// rejects garbage by length.
func cleanCompanyName(v string) string {
	v = trailingSegment.ReplaceAllString(utils.CleanText(v), "")
	v = utils.CleanText(careersSuffix.ReplaceAllString(v, ""))
	if len(v) < 1 || len(v) > 100 {
		return ""
	}
	return v
}

// companyFromHost title-cases the second-to-last host label of dedicated
// career hosts like careers.acme.com or jobs.acme.io.
func companyFromHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if !strings.HasPrefix(host, "careers.") && !strings.HasPrefix(host, "jobs.") {
		return ""
	}
	labels := strings.Split(host, ".")
	if len(labels) < 3 {
		return ""
	}
	return titleCaseWords(strings.ReplaceAll(labels[len(labels)-2], "-", " "))
}

// --- title ---

var titleMetaSelectors = []string{
	`meta[property="og:title"]`,
	`meta[name="twitter:title"]`,
	`meta[name="title"]`,
}

var titleSelectors = []string{
	`h1[class*="title"]`,
	`[data-testid*="title"]`,
	`[itemprop="title"]`,
	"h1",
}

var (
	atCompanySuffix = regexp.MustCompile(`(?i)\s+at\s+.*$`)
)

func genericTitle(doc *goquery.Document) string {
	if v := metaValue(doc, titleMetaSelectors); v != "" {
		v = trailingSegment.ReplaceAllString(utils.CleanText(v), "")
		v = utils.CleanText(atCompanySuffix.ReplaceAllString(v, ""))
		if len(v) >= 3 && len(v) <= 200 {
			return v
		}
	}
	return selectorValue(doc, titleSelectors)
}

// --- location ---

var locationSelectors = []string{
	"[data-location]",
	".location",
	`[itemprop="jobLocation"]`,
	`[class*="location"]`,
}

var locationTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:located in|based in)\s+([A-Za-z][A-Za-z .,\-]{1,59})`),
	regexp.MustCompile(`(?i)location:?\s+([A-Za-z][A-Za-z .,\-]{1,59})`),
}

func genericLocation(doc *goquery.Document, readableText string) string {
	if v := selectorValue(doc, locationSelectors); v != "" {
		return v
	}
	for _, pattern := range locationTextPatterns {
		if m := pattern.FindStringSubmatch(readableText); len(m) > 1 {
			if candidate := utils.CleanText(m[1]); candidate != "" {
				return candidate
			}
		}
	}
	return ""
}

// --- salary ---

var salarySelectors = []string{
	"[data-salary]",
	".salary",
	`[itemprop="baseSalary"]`,
	`[class*="salary"]`,
	`[class*="compensation"]`,
}

var salaryTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\$\s?\d[\d,]*(?:\.\d+)?k?(?:\s*[-–]\s*\$?\s?\d[\d,]*(?:\.\d+)?k?)?(?:\s*(?:per\s+(?:year|hour|month)|/\s*(?:yr|hr|mo)|annually|hourly))?)`),
	regexp.MustCompile(`(?i)(\d{2,3}k\s*[-–]\s*\d{2,3}k)`),
	regexp.MustCompile(`(?i)((?:USD|usd)\s?\d[\d,]*(?:\s*[-–]\s*\d[\d,]*)?)`),
}

func genericSalary(doc *goquery.Document, readableText string) string {
	if v := selectorValue(doc, salarySelectors); looksMonetary(v) {
		return v
	}
	for _, pattern := range salaryTextPatterns {
		if m := pattern.FindStringSubmatch(readableText); len(m) > 1 {
			if candidate := utils.CleanText(m[1]); looksMonetary(candidate) {
				return candidate
			}
		}
	}
	return ""
}

// looksMonetary filters selector noise: a salary must carry a currency
// marker and stay short.
func looksMonetary(v string) bool {
	if v == "" || len(v) > 50 {
		return false
	}
	lower := strings.ToLower(v)
	return strings.Contains(lower, "$") ||
		strings.Contains(lower, "usd") ||
		strings.Contains(lower, "k")
}

// --- shared lookups ---

func metaValue(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if v := utils.CleanText(content); v != "" {
				return v
			}
		}
	}
	return ""
}

func selectorValue(doc *goquery.Document, selectors []string) string {
	if v := firstMatch(doc, selectors); v != "" {
		return utils.CleanText(html.UnescapeString(v))
	}
	return ""
}

func titleCaseWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

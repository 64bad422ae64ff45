package strategies

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var greenhouseSelectors = map[string][]string{
	"title": {
		".app-title",
		"h1.section-header",
		".job__title h1",
		"h1",
	},
	"company": {
		".company-name",
		"span.company-name",
		"[class*='company']",
	},
	"location": {
		".location",
		".job__location",
		"[class*='location']",
	},
	"salary": {
		".pay-range",
		"[class*='pay-range']",
		"[class*='salary']",
	},
	"description": {
		"#content",
		".job__description",
	},
}

type GreenhouseStrategy struct{}

func (s *GreenhouseStrategy) Name() string { return "greenhouse" }

func (s *GreenhouseStrategy) CanParse(url string) bool {
	return strings.Contains(strings.ToLower(url), "greenhouse.io")
}

func (s *GreenhouseStrategy) Parse(doc *goquery.Document, readableText string, url string) PartialJob {
	job := PartialJob{
		JobTitle: firstMatch(doc, greenhouseSelectors["title"]),
		Company:  firstMatch(doc, greenhouseSelectors["company"]),
		Location: firstMatch(doc, greenhouseSelectors["location"]),
		Salary:   firstMatch(doc, greenhouseSelectors["salary"]),
	}

	// Greenhouse prints the company as "at Acme" under the title.
	if job.Company != "" {
		job.Company = strings.TrimSpace(strings.TrimPrefix(job.Company, "at "))
	}

	description := firstMatch(doc, greenhouseSelectors["description"])
	job.WorkType = detectWorkTypeSubstring(description, readableText, pageText(doc))

	return job
}

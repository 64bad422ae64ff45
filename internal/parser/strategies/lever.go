package strategies

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var leverSelectors = map[string][]string{
	"title": {
		".posting-headline h2",
		"h2[data-qa='posting-name']",
		".posting-header h2",
	},
	"location": {
		".posting-categories .location",
		".posting-category.location",
		".sort-by-time.posting-category",
	},
	"workplace": {
		".posting-categories .workplaceTypes",
		".workplace-type",
	},
	"salary": {
		".posting-categories .salary",
		"[class*='salary']",
	},
	"description": {
		".posting-description",
		"[data-qa='job-description']",
	},
}

type LeverStrategy struct{}

func (s *LeverStrategy) Name() string { return "lever" }

func (s *LeverStrategy) CanParse(rawURL string) bool {
	return strings.Contains(strings.ToLower(rawURL), "lever.co")
}

func (s *LeverStrategy) Parse(doc *goquery.Document, readableText string, rawURL string) PartialJob {
	job := PartialJob{
		JobTitle: firstMatch(doc, leverSelectors["title"]),
		Location: firstMatch(doc, leverSelectors["location"]),
		Salary:   firstMatch(doc, leverSelectors["salary"]),
		Company:  leverCompanyFromURL(rawURL),
	}

	workplace := firstMatch(doc, leverSelectors["workplace"])
	description := firstMatch(doc, leverSelectors["description"])
	job.WorkType = detectWorkTypeSubstring(workplace, description, readableText, pageText(doc))

	return job
}

// leverCompanyFromURL reads the company slug out of jobs.lever.co/<company>/<id>.
func leverCompanyFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return ""
	}
	return titleCaseWords(strings.ReplaceAll(segments[0], "-", " "))
}

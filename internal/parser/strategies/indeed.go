package strategies

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var indeedSelectors = map[string][]string{
	"title": {
		"h1.jobsearch-JobInfoHeader-title",
		"[data-testid='jobsearch-JobInfoHeader-title']",
		"h1[class*='JobInfoHeader']",
	},
	"company": {
		"[data-testid='inlineHeader-companyName']",
		"[data-company-name='true']",
		".jobsearch-InlineCompanyRating div",
		"[class*='companyName']",
	},
	"location": {
		"[data-testid='inlineHeader-companyLocation']",
		"[data-testid='jobsearch-JobInfoHeader-companyLocation']",
		".jobsearch-JobInfoHeader-subtitle div",
	},
	"salary": {
		"#salaryInfoAndJobType .attribute_snippet",
		"[class*='salary-snippet']",
		"[data-testid='attribute_snippet_testid']",
	},
	"description": {
		"#jobDescriptionText",
		".jobsearch-jobDescriptionText",
	},
}

type IndeedStrategy struct{}

func (s *IndeedStrategy) Name() string { return "indeed" }

func (s *IndeedStrategy) CanParse(url string) bool {
	return strings.Contains(strings.ToLower(url), "indeed.com")
}

func (s *IndeedStrategy) Parse(doc *goquery.Document, readableText string, url string) PartialJob {
	job := PartialJob{
		JobTitle: firstMatch(doc, indeedSelectors["title"]),
		Company:  firstMatch(doc, indeedSelectors["company"]),
		Location: firstMatch(doc, indeedSelectors["location"]),
		Salary:   firstMatch(doc, indeedSelectors["salary"]),
	}

	description := firstMatch(doc, indeedSelectors["description"])
	job.WorkType = detectWorkTypeSubstring(description, readableText, pageText(doc))

	return job
}

package strategies

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var workdaySelectors = map[string][]string{
	"title": {
		"h1[data-automation-id='jobPostingHeader']",
		"[data-automation-id='jobPostingHeader']",
		"h2[data-automation-id='jobPostingHeader']",
	},
	"location": {
		"[data-automation-id='locations'] dd",
		"[data-automation-id='location']",
		"[data-automation-id='locations']",
	},
	"salary": {
		"[data-automation-id='salaryRange']",
		"[class*='salary']",
	},
	"description": {
		"[data-automation-id='jobPostingDescription']",
	},
}

type WorkdayStrategy struct{}

func (s *WorkdayStrategy) Name() string { return "workday" }

func (s *WorkdayStrategy) CanParse(rawURL string) bool {
	return strings.Contains(strings.ToLower(rawURL), "myworkdayjobs.com")
}

func (s *WorkdayStrategy) Parse(doc *goquery.Document, readableText string, rawURL string) PartialJob {
	job := PartialJob{
		JobTitle: firstMatch(doc, workdaySelectors["title"]),
		Location: firstMatch(doc, workdaySelectors["location"]),
		Salary:   firstMatch(doc, workdaySelectors["salary"]),
		Company:  workdayCompanyFromURL(rawURL),
	}

	description := firstMatch(doc, workdaySelectors["description"])
	job.WorkType = detectWorkTypeSubstring(description, readableText, pageText(doc))

	return job
}

// workdayCompanyFromURL reads the tenant out of <company>.wd5.myworkdayjobs.com.
func workdayCompanyFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	labels := strings.Split(host, ".")
	if len(labels) < 3 || labels[0] == "www" {
		return ""
	}
	return titleCaseWords(strings.ReplaceAll(labels[0], "-", " "))
}

package strategies

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var glassdoorSelectors = map[string][]string{
	"title": {
		"[data-test='job-title']",
		"h1[class*='jobTitle']",
		"h1[class*='JobDetails_jobTitle']",
	},
	"company": {
		"[data-test='employer-name']",
		"[class*='EmployerProfile_employerName']",
		"[class*='employerName']",
	},
	"location": {
		"[data-test='location']",
		"[data-test='emp-location']",
		"[class*='JobDetails_location']",
	},
	"salary": {
		"[data-test='detailSalary']",
		"[class*='salaryEstimate']",
		"[class*='SalaryEstimate']",
	},
	"description": {
		"[class*='JobDetails_jobDescription']",
		".jobDescriptionContent",
	},
}

type GlassdoorStrategy struct{}

func (s *GlassdoorStrategy) Name() string { return "glassdoor" }

func (s *GlassdoorStrategy) CanParse(url string) bool {
	return strings.Contains(strings.ToLower(url), "glassdoor.com")
}

func (s *GlassdoorStrategy) Parse(doc *goquery.Document, readableText string, url string) PartialJob {
	job := PartialJob{
		JobTitle: firstMatch(doc, glassdoorSelectors["title"]),
		Company:  firstMatch(doc, glassdoorSelectors["company"]),
		Location: firstMatch(doc, glassdoorSelectors["location"]),
		Salary:   firstMatch(doc, glassdoorSelectors["salary"]),
	}

	description := firstMatch(doc, glassdoorSelectors["description"])
	job.WorkType = detectWorkTypeSubstring(description, readableText, pageText(doc))

	return job
}

package strategies

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selector fallbacks for LinkedIn job pages. LinkedIn ships several layout
// generations at once, so each field tries the current markup first and
// older or hashed-class variants after.
var linkedinSelectors = map[string][]string{
	"title": {
		".top-card-layout__title",
		"h1.t-24",
		"h1.topcard__title",
		"h1[class*='job-title']",
	},
	"company": {
		".topcard__org-name-link",
		"a.topcard__org-name-link",
		".top-card-layout__card .topcard__flavor a",
		"[class*='company-name']",
	},
	"location": {
		".topcard__flavor--bullet",
		".top-card-layout__second-subline .topcard__flavor--bullet",
		"[class*='job-location']",
	},
	"salary": {
		".salary.compensation__salary",
		".compensation__salary",
		"[class*='salary']",
	},
	"description": {
		".show-more-less-html__markup",
		".description__text",
	},
}

type LinkedInStrategy struct{}

func (s *LinkedInStrategy) Name() string { return "linkedin" }

func (s *LinkedInStrategy) CanParse(url string) bool {
	return strings.Contains(strings.ToLower(url), "linkedin.com")
}

func (s *LinkedInStrategy) Parse(doc *goquery.Document, readableText string, url string) PartialJob {
	job := PartialJob{
		JobTitle: firstMatch(doc, linkedinSelectors["title"]),
		Company:  firstMatch(doc, linkedinSelectors["company"]),
		Location: firstMatch(doc, linkedinSelectors["location"]),
		Salary:   firstMatch(doc, linkedinSelectors["salary"]),
	}

	description := firstMatch(doc, linkedinSelectors["description"])
	job.WorkType = detectWorkTypeSubstring(description, readableText, pageText(doc))

	return job
}

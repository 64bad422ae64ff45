package strategies

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestDispatchSelectsFirstMatchingStrategy(t *testing.T) {
	registry := NewRegistry()
	doc := mustDoc(t, "<html><body></body></html>")

	tests := []struct {
		url  string
		want string
	}{
		{"https://www.linkedin.com/jobs/view/123", "linkedin"},
		{"https://www.indeed.com/viewjob?jk=abc", "indeed"},
		{"https://www.glassdoor.com/job-listing/x", "glassdoor"},
		{"https://boards.greenhouse.io/acme/jobs/1", "greenhouse"},
		{"https://jobs.lever.co/acme/uuid", "lever"},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/x", "workday"},
		{"https://jobs.smallstartup.dev/posting/9", "generic"},
	}

	for _, tt := range tests {
		_, used := Dispatch(registry, doc, "", tt.url)
		if used != tt.want {
			t.Errorf("Dispatch(%q) used %q, want %q", tt.url, used, tt.want)
		}
	}
}

func TestDispatchGenericIsAlwaysLast(t *testing.T) {
	registry := NewRegistry()
	if registry[len(registry)-1].Name() != genericName {
		t.Fatal("generic strategy is not the final registry entry")
	}
	if !registry[len(registry)-1].CanParse("anything at all") {
		t.Fatal("generic CanParse must accept every URL")
	}
}

// A field the specific parser extracts wins over a conflicting generic
// value; fields the specific parser misses are filled by generic.
func TestDispatchMergePrecedence(t *testing.T) {
	// LinkedIn markup gives the specific parser title+company; the JSON-LD
	// block gives generic a conflicting title plus a location LinkedIn's
	// selectors cannot see.
	html := `<html><head>
<script type="application/ld+json">{
  "@type": "JobPosting",
  "title": "Generic Title",
  "hiringOrganization": {"@type": "Organization", "name": "Generic Org"},
  "jobLocation": {"@type": "Place", "address": {"addressLocality": "Austin", "addressRegion": "TX"}}
}</script>
</head><body>
<h1 class="top-card-layout__title">Software Engineer</h1>
<a class="topcard__org-name-link">Acme Corp</a>
</body></html>`

	doc := mustDoc(t, html)
	job, used := Dispatch(NewRegistry(), doc, "", "https://www.linkedin.com/jobs/view/123")

	if used != "linkedin" {
		t.Fatalf("used = %q", used)
	}
	if job.JobTitle != "Software Engineer" {
		t.Errorf("JobTitle = %q, specific value should win", job.JobTitle)
	}
	if job.Company != "Acme Corp" {
		t.Errorf("Company = %q, specific value should win", job.Company)
	}
	if job.Location != "Austin, TX" {
		t.Errorf("Location = %q, generic should fill the gap", job.Location)
	}
}

func TestFirstMatchFallsThroughSelectors(t *testing.T) {
	doc := mustDoc(t, `<div><span class="secondary">  Backend Engineer </span></div>`)

	got := firstMatch(doc, []string{".primary", ".secondary"})
	if got != "Backend Engineer" {
		t.Errorf("firstMatch = %q", got)
	}

	if got := firstMatch(doc, []string{".missing"}); got != "" {
		t.Errorf("firstMatch on absent selectors = %q, want empty", got)
	}
}

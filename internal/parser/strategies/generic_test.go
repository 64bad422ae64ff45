package strategies

import (
	"testing"

	"jobtrail-utils/pkg/models"
)

func TestGenericParseJSONLD(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">{
  "@context": "https://schema.org",
  "@type": "JobPosting",
  "title": "Platform Engineer",
  "hiringOrganization": {"@type": "Organization", "name": "Acme Corp"},
  "jobLocation": {"@type": "Place", "address": {"@type": "PostalAddress", "addressLocality": "Denver", "addressRegion": "CO"}},
  "baseSalary": {"@type": "MonetaryAmount", "currency": "USD", "value": {"@type": "QuantitativeValue", "minValue": 140000, "maxValue": 170000, "unitText": "YEAR"}}
}</script>
</head><body></body></html>`

	job := (&GenericStrategy{}).Parse(mustDoc(t, html), "", "https://example.com/jobs/1")

	if job.JobTitle != "Platform Engineer" {
		t.Errorf("JobTitle = %q", job.JobTitle)
	}
	if job.Company != "Acme Corp" {
		t.Errorf("Company = %q", job.Company)
	}
	if job.Location != "Denver, CO" {
		t.Errorf("Location = %q", job.Location)
	}
	if job.Salary != "$140000 - $170000 per year" {
		t.Errorf("Salary = %q", job.Salary)
	}
}

func TestGenericParseJSONLDInsideGraph(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">{
  "@context": "https://schema.org",
  "@graph": [
    {"@type": "WebSite", "name": "Acme Careers"},
    {"@type": "JobPosting", "title": "SRE", "hiringOrganization": {"name": "Acme Corp"}}
  ]
}</script>
</head><body></body></html>`

	job := (&GenericStrategy{}).Parse(mustDoc(t, html), "", "https://example.com/jobs/2")

	if job.JobTitle != "SRE" {
		t.Errorf("JobTitle = %q", job.JobTitle)
	}
	if job.Company != "Acme Corp" {
		t.Errorf("Company = %q", job.Company)
	}
}

func TestLDSalaryShapes(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{
			name: "range with unit",
			in: map[string]any{
				"value": map[string]any{"minValue": float64(30), "maxValue": float64(45), "unitText": "HOUR"},
			},
			want: "$30 - $45 per hour",
		},
		{
			name: "single value object",
			in: map[string]any{
				"value": map[string]any{"value": float64(95000)},
			},
			want: "$95000 per year",
		},
		{
			name: "bare number",
			in:   map[string]any{"value": float64(120000)},
			want: "$120000 per year",
		},
		{
			name: "bare string",
			in:   map[string]any{"value": "80,000"},
			want: "$80,000 per year",
		},
		{
			name: "not a map",
			in:   "120k",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ldSalary(tt.in); got != tt.want {
				t.Errorf("ldSalary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenericCompanyFromMetaStripsSuffixes(t *testing.T) {
	html := `<html><head>
<meta property="og:site_name" content="Acme Corp - Careers">
</head><body></body></html>`

	job := (&GenericStrategy{}).Parse(mustDoc(t, html), "", "https://example.com/jobs/3")
	if job.Company != "Acme Corp" {
		t.Errorf("Company = %q, want %q", job.Company, "Acme Corp")
	}
}

func TestGenericCompanyFromCareerHost(t *testing.T) {
	html := `<html><body><p>Some unrelated page text.</p></body></html>`

	job := (&GenericStrategy{}).Parse(mustDoc(t, html), "", "https://careers.bright-data.com/jobs/42")
	if job.Company != "Bright Data" {
		t.Errorf("Company = %q, want %q", job.Company, "Bright Data")
	}
}

func TestGenericTitleFromOGTitle(t *testing.T) {
	html := `<html><head>
<meta property="og:title" content="Senior Backend Engineer at Acme Corp">
</head><body></body></html>`

	job := (&GenericStrategy{}).Parse(mustDoc(t, html), "", "https://example.com/jobs/4")
	if job.JobTitle != "Senior Backend Engineer" {
		t.Errorf("JobTitle = %q", job.JobTitle)
	}
}

func TestGenericLocationFromText(t *testing.T) {
	doc := mustDoc(t, "<html><body></body></html>")
	job := (&GenericStrategy{}).Parse(doc, "This role is based in Lisbon and reports to the CTO", "https://example.com/jobs/5")
	if job.Location == "" {
		t.Error("location pattern did not match readable text")
	}
}

func TestGenericSalaryRejectsNonMonetary(t *testing.T) {
	html := `<html><body><div class="salary">Competitive compensation package</div></body></html>`

	job := (&GenericStrategy{}).Parse(mustDoc(t, html), "", "https://example.com/jobs/6")
	if job.Salary != "" {
		t.Errorf("Salary = %q, want empty for non-monetary text", job.Salary)
	}
}

func TestGenericSalaryFromText(t *testing.T) {
	doc := mustDoc(t, "<html><body></body></html>")
	job := (&GenericStrategy{}).Parse(doc, "Compensation: $120,000 - $150,000 per year plus equity", "https://example.com/jobs/7")
	if job.Salary == "" {
		t.Error("salary pattern did not match readable text")
	}
}

func TestDetectWorkTypeCascade(t *testing.T) {
	doc := mustDoc(t, "<html><body></body></html>")

	tests := []struct {
		name string
		text string
		want string
	}{
		{"fully remote", "This position is fully remote within the US.", models.WorkTypeRemote},
		{"wfh", "We support WFH for all engineers.", models.WorkTypeRemote},
		{"explicit hybrid", "Hybrid schedule, three days a week.", models.WorkTypeHybrid},
		{"remote office co-occurrence", "Remote friendly with two days in our office.", models.WorkTypeHybrid},
		{"plain remote", "This position is remote.", models.WorkTypeRemote},
		{"onsite", "This role is on-site in our Austin location.", models.WorkTypeOnSite},
		{"relocation", "Candidates must relocate to Seattle.", models.WorkTypeOnSite},
		{"no signal", "We build developer tools.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectWorkType(doc, tt.text); got != tt.want {
				t.Errorf("detectWorkType(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectWorkTypeSelectorFallback(t *testing.T) {
	doc := mustDoc(t, `<html><body><span class="workplaceTypes">Hybrid</span></body></html>`)

	// Body text includes the selector's own "Hybrid" text, matched by the
	// text cascade before the selector fallback; either path must land on
	// the same answer.
	if got := detectWorkType(doc, ""); got != models.WorkTypeHybrid {
		t.Errorf("detectWorkType = %q, want %q", got, models.WorkTypeHybrid)
	}
}

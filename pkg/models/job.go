package models

// Work arrangement values detected from posting content
const (
	WorkTypeRemote = "Remote"
	WorkTypeHybrid = "Hybrid"
	WorkTypeOnSite = "On-site"
)

// Confidence tiers for an extraction result
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// ParsedJobData is the structured output of a successful parse. Confidence
// and Source are always set; every other field is best-effort and may be
// empty depending on what the strategies managed to extract.
type ParsedJobData struct {
	Company         string   `json:"company,omitempty"`
	JobTitle        string   `json:"jobTitle,omitempty"`
	Location        string   `json:"location,omitempty"`
	Salary          string   `json:"salary,omitempty"`
	WorkType        string   `json:"workType,omitempty"`
	Description     string   `json:"description,omitempty"`
	Confidence      string   `json:"confidence"`
	Source          string   `json:"source"`
	ExtractedFields []string `json:"extractedFields"`
}

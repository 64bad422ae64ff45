package parser

import (
	"jobtrail-utils/internal/parser/strategies"
	"jobtrail-utils/pkg/models"
)

// Field weights reflect how strongly each extracted field indicates a real
// job posting was parsed.
const (
	weightCompany  = 30
	weightJobTitle = 40
	weightLocation = 15
	weightSalary   = 10
	weightWorkType = 5
)

// ScoreConfidence computes the high/medium/low tier for an extraction.
// Pure function: adding a field never lowers the tier.
func ScoreConfidence(job strategies.PartialJob, extractedFields []string) string {
	score := 0

	if job.Company != "" {
		score += weightCompany
		if len(job.Company) > 2 {
			score += 5
		}
	}
	if job.JobTitle != "" {
		score += weightJobTitle
		if len(job.JobTitle) > 5 {
			score += 5
		}
	}
	if job.Location != "" {
		score += weightLocation
	}
	if job.Salary != "" {
		score += weightSalary
	}
	if job.WorkType != "" {
		score += weightWorkType
	}
	if len(extractedFields) >= 4 {
		score += 10
	}

	switch {
	case score >= 75:
		return models.ConfidenceHigh
	case score >= 45:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

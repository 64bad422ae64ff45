package parser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobtrail-utils/internal/logging"
	"jobtrail-utils/internal/parser/cache"
	"jobtrail-utils/internal/parser/strategies"
	"jobtrail-utils/pkg/models"
	"jobtrail-utils/pkg/utils"
)

const (
	maxDescriptionRunes = 2000
	maxRawTextRunes     = 1000
)

// Parser runs the full extraction pipeline: cache check, URL validation,
// fetch, sanitize, readable-content extraction, strategy dispatch,
// confidence scoring. It is safe for concurrent use; all cross-request
// state lives in the injected cache store.
type Parser struct {
	cache            cache.Store
	fetcher          Fetcher
	validator        *Validator
	sanitizer        *Sanitizer
	registry         []strategies.Strategy
	supportedDomains []string
}

// New wires the pipeline together. The cache store and fetcher are
// injected so tests can substitute fakes.
func New(store cache.Store, fetcher Fetcher, validator *Validator, supportedDomains []string) *Parser {
	return &Parser{
		cache:            store,
		fetcher:          fetcher,
		validator:        validator,
		sanitizer:        NewSanitizer(),
		registry:         strategies.NewRegistry(),
		supportedDomains: append([]string(nil), supportedDomains...),
	}
}

// Parse extracts structured job data from the given URL. It always returns
// a well-formed result; pipeline failures and panics are reported through
// the Success/Error fields, never as a raised error.
func (p *Parser) Parse(ctx context.Context, rawURL string, skipCache bool) (result *models.ParserResult) {
	start := time.Now()
	domain := utils.RegistrableDomain(utils.HostnameOf(rawURL))
	logger := logging.GetGlobalLogger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("parse pipeline panic", map[string]interface{}{
				"url":   rawURL,
				"panic": fmt.Sprintf("%v", r),
			})
			result = &models.ParserResult{
				Success: false,
				Error:   fmt.Sprintf("internal error: %v", r),
				DebugInfo: &models.DebugInfo{
					Domain:           domain,
					ParserUsed:       "error",
					ProcessingTimeMs: time.Since(start).Milliseconds(),
				},
			}
		}
	}()

	if !skipCache {
		if cached, ok := p.cache.Get(ctx, rawURL); ok {
			logger.Debug("cache hit", map[string]interface{}{"url": rawURL})
			return &models.ParserResult{
				Success: true,
				Data:    cached,
				DebugInfo: &models.DebugInfo{
					Domain:           domain,
					ParserUsed:       "cache",
					ProcessingTimeMs: time.Since(start).Milliseconds(),
				},
			}
		}
	}

	if v := p.validator.Validate(ctx, rawURL); !v.Valid {
		logger.Warn("url rejected", map[string]interface{}{
			"url":    rawURL,
			"reason": v.Reason,
		})
		return &models.ParserResult{Success: false, Error: v.Reason}
	}

	fetched, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		logger.Warn("fetch failed", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
		return &models.ParserResult{Success: false, Error: err.Error()}
	}

	sanitized := p.sanitizer.Sanitize(fetched.HTML)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sanitized))
	if err != nil {
		return &models.ParserResult{Success: false, Error: fmt.Sprintf("failed to parse HTML: %v", err)}
	}

	readable := ExtractReadable(sanitized, fetched.FinalURL)
	job, parserUsed := strategies.Dispatch(p.registry, doc, readable.Text, fetched.FinalURL)

	extractedFields := extractedFieldNames(job)
	confidence := ScoreConfidence(job, extractedFields)

	description := readable.Markdown
	if description == "" {
		description = readable.Text
	}

	data := &models.ParsedJobData{
		Company:         job.Company,
		JobTitle:        job.JobTitle,
		Location:        job.Location,
		Salary:          job.Salary,
		WorkType:        job.WorkType,
		Description:     utils.TruncateRunes(description, maxDescriptionRunes),
		Confidence:      confidence,
		Source:          utils.RegistrableDomain(utils.HostnameOf(fetched.FinalURL)),
		ExtractedFields: extractedFields,
	}

	if !skipCache {
		p.cache.Set(ctx, rawURL, data)
	}

	logger.Info("parse complete", map[string]interface{}{
		"url":        rawURL,
		"parser":     parserUsed,
		"confidence": confidence,
		"fields":     len(extractedFields),
	})

	return &models.ParserResult{
		Success: true,
		Data:    data,
		RawText: utils.TruncateRunes(readable.Text, maxRawTextRunes),
		DebugInfo: &models.DebugInfo{
			Domain:           domain,
			ParserUsed:       parserUsed,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
	}
}

// IsSupported reports whether the URL passes validation. No fetch happens.
func (p *Parser) IsSupported(ctx context.Context, rawURL string) bool {
	return p.validator.Validate(ctx, rawURL).Valid
}

// SupportedDomains returns a copy of the static domain allow-list.
func (p *Parser) SupportedDomains() []string {
	return append([]string(nil), p.supportedDomains...)
}

// ClearCache drops any cached result for the URL.
func (p *Parser) ClearCache(ctx context.Context, rawURL string) {
	p.cache.Delete(ctx, rawURL)
}

// CacheStats exposes the underlying store's counters.
func (p *Parser) CacheStats(ctx context.Context) cache.Stats {
	return p.cache.Stats(ctx)
}

// extractedFieldNames lists populated fields in a fixed order; the order
// feeds both the JSON output and the confidence bonus for field count.
func extractedFieldNames(job strategies.PartialJob) []string {
	fields := make([]string, 0, 5)
	if job.Company != "" {
		fields = append(fields, "company")
	}
	if job.JobTitle != "" {
		fields = append(fields, "jobTitle")
	}
	if job.Location != "" {
		fields = append(fields, "location")
	}
	if job.Salary != "" {
		fields = append(fields, "salary")
	}
	if job.WorkType != "" {
		fields = append(fields, "workType")
	}
	return fields
}

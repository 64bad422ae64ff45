package models

import "time"

// DebugInfo carries diagnostics for a parse attempt
type DebugInfo struct {
	Domain           string `json:"domain"`
	ParserUsed       string `json:"parserUsed"`
	ProcessingTimeMs int64  `json:"processingTimeMs"`
}

// ParserResult is the parser's own result shape. The HTTP layer returns it
// as-is; callers embedding this service wrap it in their own envelopes.
type ParserResult struct {
	Success   bool           `json:"success"`
	Data      *ParsedJobData `json:"data,omitempty"`
	Error     string         `json:"error,omitempty"`
	RawText   string         `json:"rawText,omitempty"`
	DebugInfo *DebugInfo     `json:"debugInfo,omitempty"`
}

// SupportedSitesResponse lists the domains the fetcher will accept
type SupportedSitesResponse struct {
	Success bool     `json:"success"`
	Domains []string `json:"domains"`
	Count   int      `json:"count"`
}

// CacheStatsResponse reports result-cache counters
type CacheStatsResponse struct {
	Success bool   `json:"success"`
	Backend string `json:"backend"`
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response from the HTTP layer
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

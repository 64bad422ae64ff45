package models

// ParseRequest represents the request payload for parsing a job posting URL
type ParseRequest struct {
	URL       string `json:"url" validate:"required,url"`
	SkipCache bool   `json:"skipCache,omitempty"`
}

// ClearCacheRequest represents the request payload for evicting a cached parse
type ClearCacheRequest struct {
	URL string `json:"url" validate:"required,url"`
}

package utils

import (
	"fmt"
	"net/http"
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// NewSSRFError returns an error for URLs rejected by the safety checks
func NewSSRFError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "URL rejected",
		Detail:  detail,
	}
}

// NewFetchError returns an error for failures while fetching page content
func NewFetchError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Message: "Fetch failed",
		Detail:  detail,
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"jobtrail-utils/internal/parser"
	"jobtrail-utils/internal/parser/cache"
	"jobtrail-utils/pkg/models"
)

type stubFetcher struct{ html string }

func (s *stubFetcher) Fetch(_ context.Context, rawURL string) (*parser.FetchResult, error) {
	return &parser.FetchResult{HTML: s.html, FinalURL: rawURL}, nil
}

func newHandlerParser(t *testing.T) *parser.Parser {
	t.Helper()
	store := cache.NewMemoryStore(10, time.Minute)
	t.Cleanup(func() { store.Close() })
	fetcher := &stubFetcher{html: "<html><body><h1>Engineer</h1></body></html>"}
	return parser.New(store, fetcher, parser.NewValidator(time.Second), []string{"linkedin.com"})
}

func TestParseHandlerRejectsInvalidBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parser/parse", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := ParseHandler(newHandlerParser(t))(e.NewContext(req, rec))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestParseHandlerRejectsMissingURL(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parser/parse", strings.NewReader(`{"skipCache": true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := ParseHandler(newHandlerParser(t))(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "validation_failed" {
		t.Errorf("Error = %q", resp.Error)
	}
}

func TestParseHandlerReportsPipelineFailure(t *testing.T) {
	e := echo.New()
	// Loopback host fails validation; the pipeline reports it in the body.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parser/parse", strings.NewReader(`{"url": "http://localhost/jobs/1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := ParseHandler(newHandlerParser(t))(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}

	var result models.ParserResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Success || result.Error == "" {
		t.Errorf("result = %+v, want success=false with an error", result)
	}
}

func TestSupportedSitesHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/parser/supported-sites", nil)
	rec := httptest.NewRecorder()

	if err := SupportedSitesHandler(newHandlerParser(t))(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp models.SupportedSitesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Count != 1 || resp.Domains[0] != "linkedin.com" {
		t.Errorf("response = %+v", resp)
	}
}

func TestCacheStatsHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/parser/cache/stats", nil)
	rec := httptest.NewRecorder()

	if err := CacheStatsHandler(newHandlerParser(t))(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp models.CacheStatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Backend != "memory" {
		t.Errorf("response = %+v", resp)
	}
}

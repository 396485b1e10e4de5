package cookie

import (
	"net"
	"slices"
	"strings"
)

// Scope is a Domain/Path pair a cookie can be stored under. An empty Domain
// means a host-only cookie.
type Scope struct {
	Domain string
	Path   string
}

// Scopes returns every domain/path combination a cookie set for host and
// path could plausibly live under, plus the extra domains and paths given.
// Browsers key cookies by (name, domain, path), so removing a cookie reliably
// means expiring it under each of these.
//
// The result is deterministic and free of duplicates.
func Scopes(host, path string, extraDomains, extraPaths []string) []Scope {
	domains := Domains(host)
	for _, d := range extraDomains {
		if d = normalizeDomain(d); d != "" && !slices.Contains(domains, d) {
			domains = append(domains, d)
		}
	}

	paths := Paths(path)
	for _, p := range extraPaths {
		if p = strings.TrimSpace(p); strings.HasPrefix(p, "/") && !slices.Contains(paths, p) {
			paths = append(paths, p)
		}
	}

	scopes := make([]Scope, 0, len(domains)*len(paths))
	for _, d := range domains {
		for _, p := range paths {
			scopes = append(scopes, Scope{Domain: d, Path: p})
		}
	}
	return scopes
}

// Domains returns the Domain attribute values worth expiring for host: the
// empty host-only value, the host itself and every parent domain with a
// leading dot, stopping above the top-level label. IPs and single-label hosts
// only get the host-only and exact values.
func Domains(host string) []string {
	host = normalizeDomain(stripPort(host))
	if host == "" {
		return []string{""}
	}

	domains := []string{"", host}
	if net.ParseIP(host) != nil || !strings.Contains(host, ".") {
		return domains
	}

	labels := strings.Split(host, ".")
	for i := range len(labels) - 1 {
		domains = append(domains, "."+strings.Join(labels[i:], "."))
	}
	return domains
}

// Paths returns "/" followed by every prefix of path, e.g. "/a/b" yields
// "/", "/a" and "/a/b".
func Paths(path string) []string {
	paths := []string{"/"}

	prefix := ""
	for seg := range strings.SplitSeq(path, "/") {
		if seg == "" {
			continue
		}
		prefix += "/" + seg
		paths = append(paths, prefix)
	}
	return paths
}

func normalizeDomain(d string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(d)), ".")
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return strings.Trim(host, "[]")
}

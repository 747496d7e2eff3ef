package ratelimit

import "strings"

var unlimited = &EndpointConfig{}

// Matches reports whether the endpoint covers a request. A Path ending in "/"
// matches any path below it that also ends with Suffix; any other Path must be equal.
func (e *EndpointConfig) Matches(path, method string) bool {
	if e.Method != method {
		return false
	}
	if !strings.HasSuffix(e.Path, "/") {
		return e.Suffix == "" && e.Path == path
	}
	rest, ok := strings.CutPrefix(path, e.Path)
	return ok && rest != "" && strings.HasSuffix(rest, e.Suffix)
}

// specificity orders matches: exact paths first, then the longest pattern
func (e *EndpointConfig) specificity() int {
	n := len(e.Path) + len(e.Suffix)
	if !strings.HasSuffix(e.Path, "/") {
		n += 1 << 16
	}
	return n
}

// key names the bucket family an endpoint's clients share
func (e *EndpointConfig) key() string {
	return e.Method + " " + e.Path + "*" + e.Suffix
}

// MatchEndpoint returns the most specific configuration covering the request,
// the shared unlimited config for health checks, or nil to use the defaults.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && path == "/health" {
		return unlimited
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Matches(path, method) && (best == nil || c.specificity() > best.specificity()) {
			best = c
		}
	}
	return best
}

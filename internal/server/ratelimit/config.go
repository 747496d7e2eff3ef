package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Path prefix; a trailing "/" enables prefix matching
	Suffix string        // Optional path suffix, e.g. "/enhance"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	Whitelist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig builds a configuration allowing perMinute requests per client by default.
// perMinute <= 0 disables limiting.
func NewConfig(perMinute int, whitelist string) *Config {
	if perMinute <= 0 {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    perMinute,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     10 * time.Minute,
		Whitelist:       parseIPList(whitelist),
		EndpointConfigs: DefaultEndpointConfigs(perMinute),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific configurations.
func DefaultEndpointConfigs(perMinute int) []EndpointConfig {
	enhance := max(perMinute/6, 1)
	return []EndpointConfig{
		// Collaborator calls are the expensive path
		{Path: "/documents/", Suffix: "/enhance", Method: "POST", Limit: enhance, Window: time.Minute, Burst: min(enhance, 3)},
		{Path: "/documents", Method: "POST", Limit: perMinute, Window: time.Minute, Burst: max(perMinute/4, 1)},
	}
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}

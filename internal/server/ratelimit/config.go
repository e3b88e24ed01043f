package ratelimit

import (
	"net/http"
	"strings"
	"time"
)

// EndpointConfig overrides the default rate for one route.
type EndpointConfig struct {
	Path   string  // exact path, or a prefix when it ends with "/"
	Method string  // HTTP method
	Rate   float64 // requests per second; zero or less means unlimited
	Burst  int     // bucket size; defaults to 1
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	Rate            float64
	Burst           int
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	EndpointConfigs []EndpointConfig
}

// DefaultConfig limits each client to ratePerSecond with the given burst.
// Evaluation may call the oracle, so it gets half the budget; health checks are free.
func DefaultConfig(ratePerSecond float64, burst int) *Config {
	return &Config{
		Enabled:         true,
		Rate:            ratePerSecond,
		Burst:           burst,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		EndpointConfigs: []EndpointConfig{
			{Path: "/health", Method: http.MethodGet, Rate: 0},
			{Path: "/evaluate", Method: http.MethodPost, Rate: ratePerSecond / 2, Burst: max(burst/2, 1)},
		},
	}
}

// MatchEndpoint returns the configuration for path and method, or nil.
// Exact matches win over prefix matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}

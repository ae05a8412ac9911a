// Package upbit provides a client for the Upbit quotation API.
package upbit

import (
	"os"
	"time"
)

const defaultBaseURL = "https://api.upbit.com"

// Config holds configuration for the Upbit API client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "https://api.upbit.com")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Upbit configuration from environment variables.
func LoadConfig() Config {
	baseURL := os.Getenv("UPBIT_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return Config{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}

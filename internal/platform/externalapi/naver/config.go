// Package naver provides a client for the Naver news search API.
package naver

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://openapi.naver.com"
	defaultDisplay = 10
)

// Config holds configuration for the Naver search API client.
type Config struct {
	BaseURL      string
	ClientID     string // sent as X-Naver-Client-Id
	ClientSecret string // sent as X-Naver-Client-Secret
	Display      int    // number of results per search (1-100)
	Timeout      time.Duration
}

// LoadConfig loads Naver configuration from environment variables.
func LoadConfig() Config {
	baseURL := os.Getenv("NAVER_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	display, err := strconv.Atoi(os.Getenv("NAVER_NEWS_DISPLAY"))
	if err != nil || display <= 0 || display > 100 {
		display = defaultDisplay
	}
	return Config{
		BaseURL:      baseURL,
		ClientID:     os.Getenv("NAVER_CLIENT_ID"),
		ClientSecret: os.Getenv("NAVER_CLIENT_SECRET"),
		Display:      display,
		Timeout:      5 * time.Second,
	}
}

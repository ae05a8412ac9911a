package di

import (
	"coin_backend/internal/platform/externalapi/naver"
	"coin_backend/internal/platform/externalapi/upbit"
	infrahttp "coin_backend/internal/platform/http"
)

// NewUpbitClient creates a fully configured Upbit client with HTTP client.
func NewUpbitClient() *upbit.Client {
	cfg := upbit.LoadConfig()
	return upbit.NewClient(cfg, infrahttp.NewHTTPClient("upbit", cfg.Timeout))
}

// NewNaverClient creates a fully configured Naver news client with HTTP client.
func NewNaverClient() *naver.Client {
	cfg := naver.LoadConfig()
	return naver.NewClient(cfg, infrahttp.NewHTTPClient("naver", cfg.Timeout))
}

// Package di provides dependency injection factories for creating application components.
package di

import (
	"os"
	"strconv"

	coinusecase "coin_backend/internal/feature/coins/usecase"
)

// AppConfig はサーバープロセスの設定です。
type AppConfig struct {
	Port         string
	MaxDisplayed int  // COIN_MAX_DISPLAYED
	SeedOnStart  bool // SEED_ON_START
	PruneOnSeed  bool // SEED_PRUNE
}

// LoadAppConfig は環境変数から AppConfig を読み込みます。
func LoadAppConfig() AppConfig {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	maxDisplayed, err := strconv.Atoi(os.Getenv("COIN_MAX_DISPLAYED"))
	if err != nil || maxDisplayed <= 0 {
		maxDisplayed = coinusecase.DefaultMaxDisplayedCoins
	}
	seed, _ := strconv.ParseBool(os.Getenv("SEED_ON_START"))
	prune, _ := strconv.ParseBool(os.Getenv("SEED_PRUNE"))
	return AppConfig{
		Port:         port,
		MaxDisplayed: maxDisplayed,
		SeedOnStart:  seed,
		PruneOnSeed:  prune,
	}
}

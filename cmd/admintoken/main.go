// Command admintoken は管理 API 用の JWT を発行します。
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	jwtmw "coin_backend/internal/platform/jwt"
)

func main() {
	userID := flag.Uint("user", 1, "admin user id (JWT subject)")
	role := flag.String("role", jwtmw.RoleAdmin, "role claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		slog.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	token, err := jwtmw.NewGenerator(secret, *ttl).GenerateToken(*userID, *role)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

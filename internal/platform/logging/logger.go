// Package logging はアプリケーション共通の slog ロガーを構築します。
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config はログ出力の設定です。
type Config struct {
	Level string // debug, info, warn, error
	File  string // 空なら標準出力のみ
}

// LoadConfig は LOG_LEVEL と LOG_FILE を読み込みます。
func LoadConfig() Config {
	return Config{
		Level: os.Getenv("LOG_LEVEL"),
		File:  os.Getenv("LOG_FILE"),
	}
}

// ParseLevel は未知の値を info として扱います。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger は JSON 形式のロガーを返します。File が設定されていれば lumberjack でローテーションします。
func NewLogger(cfg Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(writerFor(cfg, os.Stdout), &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}))
}

func writerFor(cfg Config, stdout io.Writer) io.Writer {
	if cfg.File == "" {
		return stdout
	}
	fileLogger := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    10, // Megabytes
		MaxBackups: 3,
		MaxAge:     28, // Days
		Compress:   true,
	}
	return io.MultiWriter(stdout, fileLogger)
}

// Setup は NewLogger の結果をデフォルトロガーに設定します。
func Setup() *slog.Logger {
	logger := NewLogger(LoadConfig())
	slog.SetDefault(logger)
	return logger
}

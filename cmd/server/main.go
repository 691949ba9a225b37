package main

import (
	"log/slog"
	"os"

	"github.com/divvyhq/divvy/internal/auth"
	"github.com/divvyhq/divvy/internal/config"
	"github.com/divvyhq/divvy/internal/currency"
	"github.com/divvyhq/divvy/internal/service"
	"github.com/divvyhq/divvy/internal/storage/sqlite"
	"github.com/divvyhq/divvy/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.DBPath)

	converter := currency.NewConverter(currency.DefaultRates())
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	router := service.NewRouter(store, converter, authenticator, jwtManager)

	slog.Info("server starting", "addr", cfg.Addr)
	if err := router.Run(cfg.Addr); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

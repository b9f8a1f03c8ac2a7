// PriceWheel: selling price calculator
//
// A cross-platform desktop application that turns a typed cost and a
// margin picked on a horizontal wheel into a selling price, and keeps
// a book of saved quotes.
//
// Build:
//   go build -o pricewheel ./cmd/pricewheel
//
// Environment (also read from a .env file in the working directory):
//   PRICEWHEEL_CONFIG     settings file, default ~/.pricewheel/config.json
//   PRICEWHEEL_QUOTES     quote book, default ~/.pricewheel/quotes.json
//   PRICEWHEEL_STORAGE    keep the margin in this JSON file instead of
//                         the fyne preferences store
//   PRICEWHEEL_LOG_LEVEL  overrides the configured log level

package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/piwi3910/PriceWheel/internal/project"
	"github.com/piwi3910/PriceWheel/internal/ui"
)

func main() {
	_ = godotenv.Load()

	configPath := envOr("PRICEWHEEL_CONFIG", project.DefaultConfigPath())
	cfg, cfgErr := project.LoadAppConfig(configPath)
	if level := os.Getenv("PRICEWHEEL_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if cfgErr != nil {
		logger.Warn("using default settings", zap.String("path", configPath), zap.Error(cfgErr))
	}

	application := app.NewWithID("com.piwi3910.pricewheel")
	window := application.NewWindow("PriceWheel — Selling Price Calculator")

	opts := []ui.Option{ui.WithConfigPath(configPath)}
	if quotesPath := os.Getenv("PRICEWHEEL_QUOTES"); quotesPath != "" {
		opts = append(opts, ui.WithQuotesPath(quotesPath))
	}
	if storagePath := os.Getenv("PRICEWHEEL_STORAGE"); storagePath != "" {
		store, err := project.OpenFileStorage(storagePath)
		if err != nil {
			logger.Warn("falling back to preferences storage", zap.String("path", storagePath), zap.Error(err))
		} else {
			opts = append(opts, ui.WithStorage(store))
		}
	}

	appUI := ui.NewApp(application, window, cfg, logger, opts...)
	defer appUI.Close()
	appUI.ApplyTheme()
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(420, 720))
	window.CenterOnScreen()

	logger.Info("starting", zap.String("config", configPath), zap.String("level", cfg.LogLevel))
	window.ShowAndRun()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newLogger builds a production logger at level, or a development one for
// debug.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

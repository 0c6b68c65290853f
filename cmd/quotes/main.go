package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/quanterra/fideligo/internal/config"
	"github.com/quanterra/fideligo/internal/dbg"
	"github.com/quanterra/fideligo/pkg/fidelity"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the run configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	logger := dbg.New(cfg.Debug)
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	logger.Info("quotes started", zap.String("browser", cfg.Browser))
	defer logger.Info("done")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pw, err := playwright.Run()
	if err != nil {
		logger.Fatal("unable to start playwright", zap.Error(err))
	}
	defer func() { _ = pw.Stop() }()

	browser, err := launch(pw, cfg)
	if err != nil {
		logger.Fatal("unable to launch browser", zap.Error(err))
	}

	driver, err := fidelity.NewDriver(browser,
		fidelity.WithTimeout(cfg.Timeout()),
		fidelity.WithLogger(logger))
	if err != nil {
		logger.Fatal("unable to create driver", zap.Error(err))
	}

	if err := driver.Open(ctx); err != nil {
		logger.Fatal("unable to open login page", zap.Error(err))
	}
	defer func() { _ = driver.Close(ctx) }()

	// The operator logs in by hand, the session continues once confirmed.
	confirmer := fidelity.NewPromptConfirmer(os.Stdin, os.Stdout)
	ready, err := confirmer.Confirm("Logged in")
	if err != nil || !ready {
		logger.Warn("session not confirmed")
		return
	}

	for _, symbol := range cfg.Symbols {
		quote, err := driver.Quote(ctx, symbol)
		if err != nil {
			continue
		}
		logger.Info("quote", quote.Fields()...)
	}

	if cfg.Account != "" {
		cash, err := driver.CashAvailableToTrade(ctx, cfg.Account)
		if err == nil {
			logger.Info("cash available to trade",
				zap.String("account", cfg.Account),
				zap.String("cash", cash.String()))
		}
	}
}

func launch(pw *playwright.Playwright, cfg *config.Config) (playwright.Browser, error) {
	opts := playwright.BrowserTypeLaunchOptions{Headless: playwright.Bool(cfg.Headless)}
	switch cfg.Browser {
	case "chromium":
		return pw.Chromium.Launch(opts)
	case "webkit":
		return pw.WebKit.Launch(opts)
	default:
		return pw.Firefox.Launch(opts)
	}
}

// Command memberauthd serves the member login, logout and auto-login check
// over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/memberauth/pkg/config"
	"github.com/dmitrymomot/memberauth/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg settings
	if err := loadConfig(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := newLogger(cfg.App)
	logger.SetAsDefault(log)

	if err := run(ctx, cfg, log); err != nil {
		log.ErrorContext(ctx, "memberauthd stopped", logger.Error(err))
		os.Exit(1)
	}
}

func loadConfig(cfg *settings) error {
	for _, load := range []func() error{
		func() error { return config.Load(&cfg.App) },
		func() error { return config.Load(&cfg.HTTP) },
		func() error { return config.Load(&cfg.Cookie) },
		func() error { return config.Load(&cfg.Session) },
		func() error { return config.Load(&cfg.Auth) },
		func() error { return config.Load(&cfg.Throttle) },
	} {
		if err := load(); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(cfg appConfig) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Service),
		logger.WithContextValue("request_id", requestIDKey),
	}
	if cfg.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
			opts = append(opts, logger.WithLevel(level))
		}
	}
	return logger.New(opts...)
}

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/api"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/logger"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/scanner"
)

type appConfig struct {
	Env             string        `env:"OTPSCAN_ENV" envDefault:"development"`
	LogLevel        string        `env:"OTPSCAN_LOG_LEVEL"`
	LogFormat       string        `env:"OTPSCAN_LOG_FORMAT"`
	QRSize          int           `env:"OTPSCAN_QR_SIZE" envDefault:"256"`
	RefreshInterval time.Duration `env:"OTPSCAN_REFRESH_INTERVAL" envDefault:"1s"`
	ExportDir       string        `env:"OTPSCAN_EXPORT_DIR" envDefault:"."`
	HTTP            api.ServerConfig
}

func defaultConfig() appConfig {
	return appConfig{
		Env:             "development",
		QRSize:          256,
		RefreshInterval: time.Second,
		ExportDir:       ".",
	}
}

func (c *appConfig) Validate() error {
	var errs []error
	if c.QRSize <= 0 || c.QRSize > 4096 {
		errs = append(errs, fmt.Errorf("OTPSCAN_QR_SIZE must be between 1 and 4096, got %d", c.QRSize))
	}
	if c.RefreshInterval < 100*time.Millisecond {
		errs = append(errs, fmt.Errorf("OTPSCAN_REFRESH_INTERVAL must be at least 100ms, got %s", c.RefreshInterval))
	}
	if c.ExportDir == "" {
		errs = append(errs, errors.New("OTPSCAN_EXPORT_DIR cannot be empty"))
	}
	if c.LogLevel != "" {
		if _, ok := logger.ParseLevel(c.LogLevel); !ok {
			errs = append(errs, fmt.Errorf("OTPSCAN_LOG_LEVEL %q is not a level", c.LogLevel))
		}
	}
	switch logger.Format(c.LogFormat) {
	case "", logger.FormatJSON, logger.FormatText:
	default:
		errs = append(errs, fmt.Errorf("OTPSCAN_LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// newLogger builds the process logger. Interactive commands stay quiet below
// warnings unless a level is configured.
func newLogger(cfg appConfig, w io.Writer, quiet bool) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, "otpscan"),
		logger.WithOutput(w),
		logger.WithContextExtractors(scanner.ScanIDExtractor),
	}
	if lvl, ok := logger.ParseLevel(cfg.LogLevel); ok {
		opts = append(opts, logger.WithLevel(lvl))
	} else if quiet {
		opts = append(opts, logger.WithLevel(slog.LevelWarn))
	}
	if cfg.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	}
	return logger.New(opts...)
}

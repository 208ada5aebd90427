package console

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultLogLevel    = "info"
	defaultLogEncoding = "console"
	logEncodingJSON    = "json"
	logOutputStderr    = "stderr"
)

// Config aggregates runtime settings for the console session.
type Config struct {
	LogLevel    string
	LogEncoding string
	// IDSeed makes card numbers reproducible when non-zero.
	IDSeed uint64
}

// Validate applies defaults and rejects unknown values.
func (cfg *Config) Validate() error {
	cfg.LogLevel = strings.ToLower(defaultIfEmpty(cfg.LogLevel, defaultLogLevel))
	cfg.LogEncoding = strings.ToLower(defaultIfEmpty(cfg.LogEncoding, defaultLogEncoding))
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}
	if cfg.LogEncoding != defaultLogEncoding && cfg.LogEncoding != logEncodingJSON {
		return fmt.Errorf("log encoding must be %q or %q, got %q", defaultLogEncoding, logEncodingJSON, cfg.LogEncoding)
	}
	return nil
}

func defaultIfEmpty(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

// NewLogger builds a zap logger writing to stderr so the menu owns stdout.
func NewLogger(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}
	zapConfig := zap.NewProductionConfig()
	if cfg.LogEncoding != logEncodingJSON {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.OutputPaths = []string{logOutputStderr}
	zapConfig.ErrorOutputPaths = []string{logOutputStderr}
	return zapConfig.Build()
}

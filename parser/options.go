package parser

import (
	"log/slog"
	"os"
)

// ParserOpt configures a Parser at construction time.
type ParserOpt func(*config)

// TelemetryMode controls telemetry collection (production-safe, zero
// cost when off).
type TelemetryMode int

const (
	TelemetryOff TelemetryMode = iota
	TelemetryBasic
)

type config struct {
	logger    *slog.Logger
	telemetry TelemetryMode
}

func defaultConfig() *config {
	level := slog.LevelInfo
	if os.Getenv("VITALANG_DEBUG_PARSER") != "" {
		level = slog.LevelDebug
	}
	return &config{
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}
}

// WithLogger overrides the default environment-gated debug logger.
func WithLogger(logger *slog.Logger) ParserOpt {
	return func(c *config) { c.logger = logger }
}

// WithTelemetry enables basic telemetry counters (token/production/error
// counts), read back via Parser.Telemetry after Parse returns.
func WithTelemetry() ParserOpt {
	return func(c *config) { c.telemetry = TelemetryBasic }
}

// Telemetry holds parser performance counters (production-safe; only
// populated when WithTelemetry is passed to New).
type Telemetry struct {
	TokenCount      int
	ProductionCount int
	ErrorCount      int
}

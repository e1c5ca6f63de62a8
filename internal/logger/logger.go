// Package logger configures the process-wide zerolog logger and carries
// request-scoped values through context.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tripwise/internal/config"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// Init configures the global logger from cfg. Call once at startup after config is loaded.
func Init(cfg config.LogConfig) {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stdout
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger

	log.Info().Str("level", zerolog.GlobalLevel().String()).Str("format", cfg.Format).Msg("logger initialized")
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// WithRequestID returns a context carrying the request ID and a logger tagged with it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	l := zerolog.Ctx(ctx).With().Str("request_id", requestID).Logger()
	return l.WithContext(ctx)
}

// RequestID returns the request ID stored in ctx, or "" if none.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// For returns the context logger with a component field attached.
func For(ctx context.Context, component string) *zerolog.Logger {
	l := zerolog.Ctx(ctx).With().Str("component", component).Logger()
	return &l
}

// Package logger provides structured logging using zerolog.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options configures a service logger.
type Options struct {
	Level      string
	Format     string
	PrettyJSON bool
	Service    string
	Version    string
	// Output defaults to os.Stdout.
	Output io.Writer
}

// New builds a logger from opts. Unknown levels fall back to info.
func New(opts Options) zerolog.Logger {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	if opts.Format == "console" || opts.PrettyJSON {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	ctx := zerolog.New(output).Level(level).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	if opts.Version != "" {
		ctx = ctx.Str("version", opts.Version)
	}
	return ctx.Logger()
}

// Setup configures the global logger.
func Setup(opts Options) {
	logger := New(opts)
	zerolog.SetGlobalLevel(logger.GetLevel())
	log.Logger = logger.With().Caller().Logger()
}

// WithRequestID returns a context carrying a request-scoped logger tagged with requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return log.Logger.With().Str("request_id", requestID).Logger().WithContext(ctx)
}

// FromContext returns the request-scoped logger, or the global logger when none is attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}

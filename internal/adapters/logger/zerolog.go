package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger implements the ports.Logger interface using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // Enable pretty console output
}

// New creates a new structured logger writing to stdout.
func New(cfg Config) *ZerologLogger {
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug", "DEBUG":
		level = zerolog.DebugLevel
	case "info", "INFO":
		level = zerolog.InfoLevel
	case "warn", "WARN", "warning", "WARNING":
		level = zerolog.WarnLevel
	case "error", "ERROR":
		level = zerolog.ErrorLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stdout
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	}

	return &ZerologLogger{
		log: zerolog.New(output).Level(level).With().Timestamp().Logger(),
	}
}

func (l *ZerologLogger) event(e *zerolog.Event, msg string, fields []map[string]interface{}) {
	for _, m := range fields {
		e = e.Fields(m)
	}
	e.Msg(msg)
}

// Debug logs a message at Debug level.
func (l *ZerologLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	l.event(l.log.Debug(), msg, fields)
}

// Info logs a message at Info level.
func (l *ZerologLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {
	l.event(l.log.Info(), msg, fields)
}

// Warn logs a message at Warning level.
func (l *ZerologLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	l.event(l.log.Warn(), msg, fields)
}

// Error logs an error message at Error level.
func (l *ZerologLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
	l.event(l.log.Error().Err(err), msg, fields)
}

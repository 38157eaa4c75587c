package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// sensitiveKeys are redacted whatever value type is logged under them.
var sensitiveKeys = map[string]struct{}{
	"access_token":  {},
	"authorization": {},
	"client_secret": {},
	"password":      {},
	"token":         {},
}

// New returns a JSON logger writing to stdout; local and dev log at debug.
func New(appEnv string) *slog.Logger {
	return NewWithWriter(appEnv, os.Stdout)
}

func NewWithWriter(appEnv string, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if appEnv == "local" || appEnv == "dev" {
		level = slog.LevelDebug
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactSensitive,
	})
	return slog.New(h)
}

func redactSensitive(_ []string, a slog.Attr) slog.Attr {
	if _, ok := sensitiveKeys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, "[REDACTED]")
	}
	return a
}

type ctxKey struct{}

// With stores a logger in context.
func With(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From gets a logger from context, falling back to slog.Default().
func From(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}

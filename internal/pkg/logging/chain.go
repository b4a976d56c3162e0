package logging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Cause is one level of an error chain.
type Cause struct {
	Level   int    `json:"level"`
	Source  string `json:"source"`
	Message string `json:"message"`
}

// ErrorChain walks err through errors.Unwrap and records every level,
// outermost first. Joined errors are flattened depth-first.
func ErrorChain(err error) []Cause {
	var out []Cause
	walk(err, 0, &out)
	return out
}

func walk(err error, level int, out *[]Cause) {
	for err != nil {
		*out = append(*out, Cause{
			Level:   level,
			Source:  fmt.Sprintf("%T", err),
			Message: err.Error(),
		})
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				walk(e, level+1, out)
			}
			return
		}
		err = errors.Unwrap(err)
		level++
	}
}

// LogError logs msg at error level together with the full cause chain of
// err. args are extra key/value pairs.
func LogError(ctx context.Context, l Logger, msg string, err error, args ...any) {
	if err == nil {
		l.Error(ctx, msg, args...)
		return
	}
	causes := ErrorChain(err)
	attrs := make([]any, 0, len(causes)+len(args))
	attrs = append(attrs, args...)
	for _, c := range causes {
		attrs = append(attrs, slog.Group(fmt.Sprintf("cause_%d", c.Level),
			slog.String("source", c.Source),
			slog.String("message", c.Message),
		))
	}
	l.Error(ctx, msg, append([]any{"error", err.Error()}, attrs...)...)
}

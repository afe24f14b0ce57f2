package telemetry

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

const redacted = "***REDACTED***"

// RedactFilter scrubs registered secret values from log records before they
// reach the wrapped handler. One filter can wrap several handlers; all of
// them see values added later.
type RedactFilter struct {
	mu      sync.RWMutex
	secrets map[string]struct{}
}

// NewRedactFilter creates an empty filter.
func NewRedactFilter() *RedactFilter {
	return &RedactFilter{secrets: make(map[string]struct{})}
}

// AddSecret registers a value to be redacted from log output.
func (f *RedactFilter) AddSecret(value string) {
	if value == "" {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.secrets[value] = struct{}{}
}

// RedactString replaces any registered value in s with a placeholder.
func (f *RedactFilter) RedactString(s string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for secret := range f.secrets {
		s = strings.ReplaceAll(s, secret, redacted)
	}
	return s
}

func (f *RedactFilter) empty() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.secrets) == 0
}

// Wrap returns a handler that redacts before delegating to inner.
func (f *RedactFilter) Wrap(inner slog.Handler) slog.Handler {
	return &redactHandler{inner: inner, filter: f}
}

type redactHandler struct {
	inner  slog.Handler
	filter *RedactFilter
}

func (h *redactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *redactHandler) Handle(ctx context.Context, record slog.Record) error {
	if h.filter.empty() {
		return h.inner.Handle(ctx, record)
	}

	out := slog.NewRecord(record.Time, record.Level, h.filter.RedactString(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.redactAttr(a))
		return true
	})
	return h.inner.Handle(ctx, out)
}

// WithAttrs redacts attrs up front; they are fixed once attached.
func (h *redactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = h.redactAttr(a)
	}
	return &redactHandler{inner: h.inner.WithAttrs(clean), filter: h.filter}
}

func (h *redactHandler) WithGroup(name string) slog.Handler {
	return &redactHandler{inner: h.inner.WithGroup(name), filter: h.filter}
}

func (h *redactHandler) redactAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return slog.String(a.Key, h.filter.RedactString(v.String()))
	case slog.KindGroup:
		group := v.Group()
		clean := make([]any, len(group))
		for i, g := range group {
			clean[i] = h.redactAttr(g)
		}
		return slog.Group(a.Key, clean...)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return slog.String(a.Key, h.filter.RedactString(err.Error()))
		}
	}
	return a
}

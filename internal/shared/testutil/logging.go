// Package testutil provides logging helpers shared by package tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Discard returns a logger that drops every record. Use it where a test
// needs a logger but never inspects the output.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Record is one captured log entry.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogBuffer collects records emitted through a captured logger.
type LogBuffer struct {
	mu      sync.Mutex
	records []Record
}

// Capture returns a logger whose records land in the returned buffer.
// Every level is enabled.
func Capture() (*slog.Logger, *LogBuffer) {
	buf := &LogBuffer{}
	return slog.New(&captureHandler{buf: buf}), buf
}

// Records returns a copy of everything captured so far.
func (b *LogBuffer) Records() []Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Record, len(b.records))
	copy(out, b.records)
	return out
}

// Has reports whether any captured record at the given level contains
// substr in its message.
func (b *LogBuffer) Has(level slog.Level, substr string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.records {
		if r.Level == level && strings.Contains(r.Message, substr) {
			return true
		}
	}
	return false
}

type captureHandler struct {
	buf   *LogBuffer
	attrs []slog.Attr
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	h.buf.records = append(h.buf.records, Record{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &captureHandler{buf: h.buf, attrs: merged}
}

func (h *captureHandler) WithGroup(string) slog.Handler { return h }

package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	fileQueueSize = 4096 // buffered channel capacity
	fileBatchSize = 50   // maximum lines per flush
	fileDrainTick = 2 * time.Second
)

// logLine is the shape written to the file, one JSON object per line.
type logLine struct {
	Time   time.Time      `json:"time"`
	Level  string         `json:"level"`
	Msg    string         `json:"msg"`
	Screen string         `json:"screen,omitempty"`
	Attrs  map[string]any `json:"attrs,omitempty"`
}

// FileHandler is a slog.Handler that appends JSON lines to a log file
// asynchronously, with zero impact on the interactive loop:
//
//   - Records are enqueued into a buffered channel (non-blocking).
//   - A single background goroutine drains the channel and writes in
//     batches (default 50 lines per flush).
//   - If the channel is full, the record is silently dropped; logging must
//     never block a screen.
//   - Graceful shutdown: call Close() to flush and close the file.
type FileHandler struct {
	file  *os.File
	queue chan logLine
	done  chan struct{}
	attrs []slog.Attr
}

// NewFileHandler opens (or creates) path for appending. The caller must
// eventually call Close().
func NewFileHandler(path string) (*FileHandler, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("file_handler: mkdir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("file_handler: open: %w", err)
	}

	h := &FileHandler{
		file:  f,
		queue: make(chan logLine, fileQueueSize),
		done:  make(chan struct{}),
	}

	go h.drainLoop()
	return h, nil
}

// ─── slog.Handler interface ───────────────────────────────────────────────────

func (h *FileHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *FileHandler) Handle(_ context.Context, r slog.Record) error {
	line := logLine{
		Time:  r.Time,
		Level: r.Level.String(),
		Msg:   r.Message,
		Attrs: map[string]any{},
	}

	// Collect attrs from WithAttrs + the record itself.
	for _, a := range h.attrs {
		if a.Key == "screen" {
			line.Screen = a.Value.String()
		} else {
			line.Attrs[a.Key] = a.Value.Any()
		}
	}
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "screen" {
			line.Screen = a.Value.String()
		} else {
			line.Attrs[a.Key] = a.Value.Any()
		}
		return true
	})
	if len(line.Attrs) == 0 {
		line.Attrs = nil
	}

	// Non-blocking enqueue: drop if channel is full.
	select {
	case h.queue <- line:
	default:
	}
	return nil
}

func (h *FileHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)
	return &FileHandler{
		file:  h.file,
		queue: h.queue,
		done:  h.done,
		attrs: newAttrs,
	}
}

func (h *FileHandler) WithGroup(_ string) slog.Handler {
	// Groups are flattened; the file sink does not nest.
	return h
}

// ─── Internals ────────────────────────────────────────────────────────────────

// drainLoop runs in the background, flushing queued lines to the file.
func (h *FileHandler) drainLoop() {
	ticker := time.NewTicker(fileDrainTick)
	defer ticker.Stop()

	batch := make([]logLine, 0, fileBatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		for _, line := range batch {
			b, err := json.Marshal(line)
			if err != nil {
				continue
			}
			_, _ = h.file.Write(append(b, '\n'))
		}
		batch = batch[:0]
	}

	for {
		select {
		case line := <-h.queue:
			batch = append(batch, line)
			if len(batch) >= fileBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-h.done:
			// Drain remaining items before exit.
			for len(h.queue) > 0 {
				batch = append(batch, <-h.queue)
			}
			flush()
			_ = h.file.Close()
			return
		}
	}
}

// Close flushes pending lines and closes the file. Safe to call multiple
// times.
func (h *FileHandler) Close() {
	select {
	case <-h.done:
	default:
		close(h.done)
	}
}

// ─── Multi-handler fan-out ─────────────────────────────────────────────────────

// MultiHandler fans out to multiple slog.Handlers.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler returns a handler that sends each record to all hs.
func NewMultiHandler(hs ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithGroup(name)
	}
	return &MultiHandler{handlers: hs}
}

package securitylog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/apiguard/core/logger"
	"github.com/dmitrymomot/apiguard/pkg/clock"
)

// DefaultCapacity is the number of entries kept when no capacity is set.
const DefaultCapacity = 1000

// Config holds the log settings. The application config nests it under
// SECURITY_LOG_.
type Config struct {
	Capacity int `env:"CAPACITY" envDefault:"1000"`
}

// Entry is one recorded security event. Details are already masked.
type Entry struct {
	Kind      string
	Message   string
	Timestamp int64 // milliseconds since epoch
	Details   map[string]any
}

// Log is a bounded ring buffer of entries, safe for concurrent use.
type Log struct {
	mu    sync.Mutex
	buf   []Entry
	start int
	size  int

	now    clock.Func
	logger *slog.Logger
}

// Option configures a Log.
type Option func(*Log)

// WithCapacity sets the ring size. Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.buf = make([]Entry, n)
		}
	}
}

// WithClock sets the clock used to stamp entries.
func WithClock(fn clock.Func) Option {
	return func(l *Log) {
		l.now = clock.Or(fn)
	}
}

// WithLogger sets the slog logger entries are mirrored to.
func WithLogger(log *slog.Logger) Option {
	return func(l *Log) {
		if log != nil {
			l.logger = log
		}
	}
}

// New creates an empty Log.
func New(opts ...Option) *Log {
	l := &Log{
		buf:    make([]Entry, DefaultCapacity),
		now:    clock.System,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var std = New()

// Default returns the process-wide log.
func Default() *Log {
	return std
}

// Record masks details, appends the entry and mirrors it to slog. It returns
// the stored entry.
func (l *Log) Record(ctx context.Context, kind, message string, details map[string]any) Entry {
	e := Entry{
		Kind:      kind,
		Message:   message,
		Timestamp: l.now(),
		Details:   Mask(details),
	}

	l.mu.Lock()
	capacity := len(l.buf)
	if l.size < capacity {
		l.buf[(l.start+l.size)%capacity] = e
		l.size++
	} else {
		l.buf[l.start] = e
		l.start = (l.start + 1) % capacity
	}
	l.mu.Unlock()

	level := slog.LevelInfo
	if warnKinds[kind] {
		level = slog.LevelWarn
	}
	if l.logger.Enabled(ctx, level) {
		attrs := make([]slog.Attr, 0, len(e.Details)+1)
		for k, v := range e.Details {
			attrs = append(attrs, slog.Any(k, v))
		}
		l.logger.LogAttrs(ctx, level, message, logger.Kind(kind), logger.Group("details", attrs...))
	}

	return cloneEntry(e)
}

// Entries returns a copy of the stored entries, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, 0, l.size)
	for i := range l.size {
		out = append(out, cloneEntry(l.buf[(l.start+i)%len(l.buf)]))
	}
	return out
}

// Len returns the number of stored entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}

// Capacity returns the ring size.
func (l *Log) Capacity() int {
	return len(l.buf)
}

// Reset drops every entry.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.buf)
	l.start, l.size = 0, 0
}

func cloneEntry(e Entry) Entry {
	e.Details = Mask(e.Details)
	return e
}

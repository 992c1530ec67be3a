package refresh

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/logger"
)

// DefaultInterval matches the one second resolution of TOTP countdowns.
const DefaultInterval = time.Second

// ErrNoCallback is returned by Run when fn is nil.
var ErrNoCallback = errors.New("refresh callback is nil")

// Func is called once on start and then on every tick.
type Func func(ctx context.Context, now time.Time)

// Option configures a Ticker.
type Option func(*Ticker)

// WithInterval sets the tick interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(t *Ticker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Ticker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithLogger sets the logger for loop start and stop events.
func WithLogger(l *slog.Logger) Option {
	return func(t *Ticker) {
		if l != nil {
			t.log = l
		}
	}
}

// Ticker drives periodic redraws of live codes. Code generation itself is
// stateless; the Ticker only decides when to call it.
type Ticker struct {
	interval time.Duration
	now      func() time.Time
	log      *slog.Logger
}

// New returns a Ticker that redraws every DefaultInterval unless configured.
func New(opts ...Option) *Ticker {
	t := &Ticker{
		interval: DefaultInterval,
		now:      time.Now,
		log:      logger.Noop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.With(logger.Component("refresh"))
	return t
}

// Run calls fn immediately and then every interval until ctx is done. It
// returns ctx.Err().
func (t *Ticker) Run(ctx context.Context, fn Func) error {
	if fn == nil {
		return ErrNoCallback
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.log.DebugContext(ctx, "refresh loop started", slog.Duration("interval", t.interval))
	fn(ctx, t.now())

	for {
		select {
		case <-ctx.Done():
			t.log.DebugContext(ctx, "refresh loop stopped")
			return ctx.Err()
		case <-ticker.C:
			fn(ctx, t.now())
		}
	}
}

// v0
// breaker.go
//
// Breaker is a small circuit breaker, generalized from the teacher's
// Kafka-specific breaker (circuit_breaker/circuitbreaker.go and
// kafkacb.go) to guard any operation: registry store lookups, kafka
// reads, kafka writes. A transient failure opens the breaker after
// MaxFailures consecutive failures; once open, calls fast-fail with
// ErrOpen until ResetTimeout elapses, at which point a single probe
// call is allowed through to test recovery.
package resilience

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrOpen is returned when the breaker is open and fast-failing calls.
var ErrOpen = errors.New("circuit breaker is open; fast-fail")

// Config holds the tunables for a Breaker.
type Config struct {
	MaxFailures  int
	ResetTimeout time.Duration
}

// Breaker wraps operations of the shape func(ctx) error with failure
// counting and an open/half-open/closed state machine.
type Breaker struct {
	name string
	cfg  Config
	lg   *slog.Logger

	mu          sync.Mutex
	state       State
	recentFails int
	openedAt    time.Time
}

// New builds a named breaker. lg may be nil, in which case state
// transitions are not logged.
func New(name string, cfg Config, lg *slog.Logger) *Breaker {
	if cfg.MaxFailures < 1 {
		cfg.MaxFailures = 1
	}
	return &Breaker{name: name, cfg: cfg, lg: lg, state: Closed}
}

// State reports the breaker's current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Execute runs op under breaker protection. While open and within the
// reset window it fast-fails with ErrOpen; once the window elapses a
// single half-open probe is allowed to decide whether to close again.
func (b *Breaker) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	b.mu.Lock()
	state, openedAt := b.state, b.openedAt
	if state == Open && time.Since(openedAt) >= b.cfg.ResetTimeout {
		// claim the single probe under the lock; later callers see HalfOpen.
		b.state = HalfOpen
		b.mu.Unlock()
		return b.probe(ctx, op)
	}
	b.mu.Unlock()

	if state == Open || state == HalfOpen {
		return ErrOpen
	}

	err := op(ctx)
	if err == nil {
		b.onSuccess()
		return nil
	}
	b.onFailure(err)
	return err
}

func (b *Breaker) probe(ctx context.Context, op func(ctx context.Context) error) error {
	b.mu.Lock()
	b.state = HalfOpen
	b.mu.Unlock()

	err := op(ctx)
	if err != nil {
		b.mu.Lock()
		b.state = Open
		b.openedAt = time.Now()
		b.recentFails++
		b.mu.Unlock()
		b.logf("breaker_halfopen_probe_failed", err)
		return err
	}
	b.onSuccess()
	b.logf("breaker_closed_after_probe", nil)
	return nil
}

func (b *Breaker) onSuccess() {
	b.mu.Lock()
	changed := b.state != Closed
	b.state = Closed
	b.recentFails = 0
	b.mu.Unlock()
	if changed {
		b.logf("breaker_state_to_closed", nil)
	}
}

func (b *Breaker) onFailure(err error) {
	b.mu.Lock()
	b.recentFails++
	opened := false
	if b.recentFails >= b.cfg.MaxFailures && b.state != Open {
		b.state = Open
		b.openedAt = time.Now()
		opened = true
	}
	b.mu.Unlock()
	if opened {
		b.logf("breaker_opened", err)
	}
}

func (b *Breaker) logf(event string, err error) {
	if b.lg == nil {
		return
	}
	if err != nil {
		b.lg.Warn(event, "name", b.name, "error", err.Error())
		return
	}
	b.lg.Info(event, "name", b.name)
}

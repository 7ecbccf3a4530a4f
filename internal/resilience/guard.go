// v0
// guard.go
package resilience

import (
	"context"
	"time"
)

// Guard pairs a Breaker with a per-call timeout, mirroring the teacher's
// KafkaBreaker.withAttemptContext/do pattern but for any operation.
type Guard struct {
	breaker *Breaker
	timeout time.Duration
}

// NewGuard builds a Guard. A zero timeout disables the per-call deadline.
func NewGuard(b *Breaker, timeout time.Duration) *Guard {
	return &Guard{breaker: b, timeout: timeout}
}

// Do executes op with a bounded timeout under breaker protection. The
// caller decides how to treat the returned error (e.g. the registry
// client maps any error here to "absent"; a kafka writer propagates it).
func (g *Guard) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attemptCtx := ctx
	cancel := func() {}
	if g.timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, g.timeout)
	}
	defer cancel()
	if g.breaker == nil {
		return op(attemptCtx)
	}
	return g.breaker.Execute(attemptCtx, op)
}

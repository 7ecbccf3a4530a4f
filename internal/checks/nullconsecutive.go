// v0
// nullconsecutive.go
//
// NullConsecutive implements §4.7: a per-PUID run counter over
// event-time-ordered observations, edge-triggered to emit one QCEvent
// exactly when the run transitions from K-1 to K.
package checks

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/mindis/observation-management-system/internal/model"
	"github.com/mindis/observation-management-system/internal/registry"
)

const FamilyNullConsecutive = "null::consecutive"

type runState struct {
	count       int64
	runStart    int64
	lastInstant int64
}

// NullConsecutive is the stateful point check for §4.7.
type NullConsecutive struct {
	mu    sync.Mutex
	state map[string]*runState
}

// NewNullConsecutive builds an empty NullConsecutive tracker.
func NewNullConsecutive() *NullConsecutive {
	return &NullConsecutive{state: make(map[string]*runState)}
}

func (c *NullConsecutive) Name() string { return "null-consecutive" }

func (c *NullConsecutive) EvaluatePoint(ctx context.Context, reg registry.Getter, obs model.SemanticObservation) Result {
	key := obs.PUID.String()

	c.mu.Lock()
	st, ok := c.state[key]
	if !ok {
		st = &runState{}
		c.state[key] = st
	}

	if !obs.IsNull() {
		st.count = 0
		c.mu.Unlock()
		return Result{}
	}

	if st.count == 0 {
		st.runStart = obs.PhenomenonTimeStart
	}
	st.count++
	st.lastInstant = obs.PhenomenonTimeEnd
	count := st.count
	runStart := st.runStart
	c.mu.Unlock()

	raw, present := reg.Get(ctx, registry.NullConsecutiveKey(obs.PUID))
	if !present {
		return Result{}
	}
	threshold, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return Result{}
	}
	if count != threshold {
		return Result{}
	}

	return Result{Events: []model.QCEvent{{
		PUID:             obs.PUID,
		EventDescription: fmt.Sprintf("Consecutive nulls: %d", count),
		WindowStart:      runStart,
		WindowEnd:        obs.PhenomenonTimeEnd,
	}}}
}

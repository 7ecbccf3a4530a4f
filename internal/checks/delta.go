// v0
// delta.go
//
// StepDelta and SpikeDelta implement §4.4. Both maintain a small
// per-PUID reorder buffer (default depth 3) so a handful of
// out-of-order arrivals can be sorted by phenomenonTimeStart before
// the delta is computed; anything displaced beyond the buffer is
// dropped from delta evaluation only, not from the stream.
package checks

import (
	"context"
	"sort"
	"sync"

	"github.com/mindis/observation-management-system/internal/model"
	"github.com/mindis/observation-management-system/internal/registry"
	"github.com/mindis/observation-management-system/internal/resolver"
)

const (
	FamilyDeltaStep  = "delta::step"
	FamilyDeltaSpike = "delta::spike"

	DefaultReorderBufferSize = 3
)

// reorderBuffer holds the last few numeric observations for one PUID,
// sorted by event time, used to compute consecutive-pair or
// centred-triple deltas despite minor out-of-order arrival.
type reorderBuffer struct {
	mu   sync.Mutex
	size int
	m    map[string][]model.SemanticObservation
}

func newReorderBuffer(size int) *reorderBuffer {
	if size < 2 {
		size = 2
	}
	return &reorderBuffer{size: size, m: make(map[string][]model.SemanticObservation)}
}

// push inserts obs in time order for its PUID, dropping the oldest
// entry once the buffer exceeds its configured depth, and returns the
// buffer's current contents (oldest first).
func (b *reorderBuffer) push(obs model.SemanticObservation) []model.SemanticObservation {
	if obs.ObservationType != model.Numerical || obs.NumericValue == nil {
		return nil
	}
	key := obs.PUID.String()

	b.mu.Lock()
	defer b.mu.Unlock()

	arr := append(b.m[key], obs)
	sort.Slice(arr, func(i, j int) bool { return arr[i].PhenomenonTimeStart < arr[j].PhenomenonTimeStart })
	if len(arr) > b.size {
		arr = arr[len(arr)-b.size:]
	}
	b.m[key] = arr

	out := make([]model.SemanticObservation, len(arr))
	copy(out, arr)
	return out
}

// StepDelta is the family `delta::step` point check.
type StepDelta struct {
	buf *reorderBuffer
}

// NewStepDelta builds a StepDelta with the given reorder buffer depth.
func NewStepDelta(bufferSize int) *StepDelta {
	return &StepDelta{buf: newReorderBuffer(bufferSize)}
}

func (d *StepDelta) Name() string { return "delta-step" }

func (d *StepDelta) EvaluatePoint(ctx context.Context, reg registry.Getter, obs model.SemanticObservation) Result {
	window := d.buf.push(obs)
	if len(window) < 2 {
		return Result{}
	}
	prev, cur := window[len(window)-2], window[len(window)-1]
	if cur.PhenomenonTimeStart != obs.PhenomenonTimeStart {
		// the just-pushed observation was displaced out of the evaluated
		// pair by reordering; nothing to emit for it yet.
		return Result{}
	}

	diff := absFloat(*cur.NumericValue - *prev.NumericValue)

	r := resolver.New(reg)
	methods := r.ResolveFamily(ctx, obs.PUID, FamilyDeltaStep, cur.Instant())

	var out Result
	for _, m := range methods {
		if m.Max == nil {
			continue
		}
		failed := diff > *m.Max
		qv := diff - *m.Max
		if !failed {
			qv = 0
		}
		out.Outcomes = append(out.Outcomes, outcomeFor(cur, FamilyDeltaStep, m.Name, "max", boolToOutcome(failed), qv))
	}
	return out
}

// SpikeDelta is the family `delta::spike` point check.
type SpikeDelta struct {
	buf *reorderBuffer
}

// NewSpikeDelta builds a SpikeDelta with the given reorder buffer depth.
func NewSpikeDelta(bufferSize int) *SpikeDelta {
	if bufferSize < 3 {
		bufferSize = 3
	}
	return &SpikeDelta{buf: newReorderBuffer(bufferSize)}
}

func (d *SpikeDelta) Name() string { return "delta-spike" }

func (d *SpikeDelta) EvaluatePoint(ctx context.Context, reg registry.Getter, obs model.SemanticObservation) Result {
	window := d.buf.push(obs)
	if len(window) < 3 {
		return Result{}
	}
	p, c, n := window[len(window)-3], window[len(window)-2], window[len(window)-1]
	if n.PhenomenonTimeStart != obs.PhenomenonTimeStart {
		return Result{}
	}

	magnitude := absFloat(2*(*c.NumericValue) - *p.NumericValue - *n.NumericValue)

	r := resolver.New(reg)
	methods := r.ResolveFamily(ctx, obs.PUID, FamilyDeltaSpike, c.Instant())

	var out Result
	for _, m := range methods {
		if m.Max == nil {
			continue
		}
		failed := magnitude > *m.Max
		qv := magnitude - *m.Max
		if !failed {
			qv = 0
		}
		out.Outcomes = append(out.Outcomes, outcomeFor(c, FamilyDeltaSpike, m.Name, "max", boolToOutcome(failed), qv))
	}
	return out
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

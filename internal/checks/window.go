// v0
// window.go
//
// TumblingWindowStore buffers observations per PUID into event-time
// aligned tumbling windows of a fixed nominal size, closing a window
// (returning its contents) once an observation's event time advances
// past the current bucket's end. Modeled on the teacher's
// windowBuffer (services/aggregator/internal/windowing.go), but
// event-time tumbling rather than wall-clock sliding, and keyed by
// PUID rather than zone.
package checks

import (
	"sync"
	"time"

	"github.com/mindis/observation-management-system/internal/model"
)

type bucket struct {
	start int64
	end   int64
	obs   []model.SemanticObservation
}

// TumblingWindowStore holds one open bucket per PUID for a fixed
// window size.
type TumblingWindowStore struct {
	mu     sync.Mutex
	size   time.Duration
	open   map[string]*bucket
}

// NewTumblingWindowStore builds a store with the given nominal window
// size (1h, 12h or 24h).
func NewTumblingWindowStore(size time.Duration) *TumblingWindowStore {
	return &TumblingWindowStore{size: size, open: make(map[string]*bucket)}
}

// Closed is a window that has been closed by advancing event time,
// ready for evaluation.
type Closed struct {
	PUID        model.PUID
	WindowStart int64
	WindowEnd   int64
	Obs         []model.SemanticObservation
}

// Add folds obs into its PUID's open bucket, aligning bucket
// boundaries to the window size from the epoch. If obs' event time
// falls in a later bucket than the currently open one, the prior
// bucket is closed and returned alongside the (now-open) new bucket's
// continuing accumulation.
func (s *TumblingWindowStore) Add(obs model.SemanticObservation) (closed *Closed, ok bool) {
	key := obs.PUID.String()
	sizeMs := s.size.Milliseconds()
	bucketStart := (obs.PhenomenonTimeStart / sizeMs) * sizeMs

	s.mu.Lock()
	defer s.mu.Unlock()

	b, exists := s.open[key]
	if !exists {
		s.open[key] = &bucket{start: bucketStart, end: bucketStart + sizeMs, obs: []model.SemanticObservation{obs}}
		return nil, false
	}

	if bucketStart == b.start {
		b.obs = append(b.obs, obs)
		return nil, false
	}

	if bucketStart < b.start {
		// a late arrival for an already-closed bucket: drop from window
		// evaluation per the delta-check out-of-order policy (§4.4); the
		// observation still flows through point checks elsewhere.
		return nil, false
	}

	result := &Closed{PUID: obs.PUID, WindowStart: b.start, WindowEnd: b.end, Obs: b.obs}
	s.open[key] = &bucket{start: bucketStart, end: bucketStart + sizeMs, obs: []model.SemanticObservation{obs}}
	return result, true
}

// Flush force-closes every open bucket, for shutdown draining.
func (s *TumblingWindowStore) Flush() []Closed {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Closed
	for key, b := range s.open {
		if len(b.obs) == 0 {
			continue
		}
		out = append(out, Closed{PUID: b.obs[0].PUID, WindowStart: b.start, WindowEnd: b.end, Obs: b.obs})
		delete(s.open, key)
	}
	return out
}

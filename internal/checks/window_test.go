// v0
// window_test.go
package checks

import (
	"testing"
	"time"

	"github.com/mindis/observation-management-system/internal/model"
)

func numObs(p model.PUID, t int64, v float64) model.SemanticObservation {
	return model.SemanticObservation{PUID: p, PhenomenonTimeStart: t, PhenomenonTimeEnd: t, ObservationType: model.Numerical, NumericValue: &v}
}

func TestTumblingWindowClosesOnAdvance(t *testing.T) {
	p := model.PUID{Feature: "A", Procedure: "B", ObservableProperty: "C"}
	s := NewTumblingWindowStore(time.Hour)

	hourMs := int64(time.Hour / time.Millisecond)
	if _, ok := s.Add(numObs(p, 0, 1)); ok {
		t.Fatalf("first add should not close a window")
	}
	if _, ok := s.Add(numObs(p, hourMs/2, 2)); ok {
		t.Fatalf("same-bucket add should not close a window")
	}
	closed, ok := s.Add(numObs(p, hourMs, 3))
	if !ok {
		t.Fatalf("expected bucket to close on advance into next hour")
	}
	if closed.WindowStart != 0 || closed.WindowEnd != hourMs || len(closed.Obs) != 2 {
		t.Fatalf("unexpected closed window: %+v", closed)
	}
}

func TestTumblingWindowDropsLateArrival(t *testing.T) {
	p := model.PUID{Feature: "A", Procedure: "B", ObservableProperty: "C"}
	s := NewTumblingWindowStore(time.Hour)
	hourMs := int64(time.Hour / time.Millisecond)

	s.Add(numObs(p, hourMs, 1))
	if _, ok := s.Add(numObs(p, 0, 2)); ok {
		t.Fatalf("a late arrival for a prior bucket must not close anything")
	}
}

func TestTumblingWindowFlush(t *testing.T) {
	p := model.PUID{Feature: "A", Procedure: "B", ObservableProperty: "C"}
	s := NewTumblingWindowStore(time.Hour)
	s.Add(numObs(p, 0, 1))
	flushed := s.Flush()
	if len(flushed) != 1 || len(flushed[0].Obs) != 1 {
		t.Fatalf("unexpected flush result: %+v", flushed)
	}
	if more := s.Flush(); len(more) != 0 {
		t.Fatalf("expected empty store after flush")
	}
}

// v0
// delta_test.go
package checks

import (
	"context"
	"testing"

	"github.com/mindis/observation-management-system/internal/model"
	"github.com/mindis/observation-management-system/internal/registry"
)

func deltaPUID() model.PUID {
	return model.PUID{Feature: "A", Procedure: "B", ObservableProperty: "C"}
}

func stepFixture() registry.Getter {
	store := registry.NewMemoryStore()
	p := deltaPUID()
	store.Set(registry.ThresholdsFamilyKey(p, FamilyDeltaStep), "m1")
	store.Set(registry.GranularityKey(p, FamilyDeltaStep, "m1"), "single")
	store.Set(registry.MinMaxKey(registry.GranularityKey(p, FamilyDeltaStep, "m1"), "max", ""), "5")
	return registry.NewClient(store, nil, nil, nil)
}

func TestStepDeltaFailsOnLargeJump(t *testing.T) {
	reg := stepFixture()
	p := deltaPUID()
	sd := NewStepDelta(DefaultReorderBufferSize)

	v1, v2 := 10.0, 20.0
	sd.EvaluatePoint(context.Background(), reg, model.SemanticObservation{PUID: p, PhenomenonTimeStart: 0, ObservationType: model.Numerical, NumericValue: &v1})
	res := sd.EvaluatePoint(context.Background(), reg, model.SemanticObservation{PUID: p, PhenomenonTimeStart: 1000, ObservationType: model.Numerical, NumericValue: &v2})

	if len(res.Outcomes) != 1 || res.Outcomes[0].Outcome != model.Fail || res.Outcomes[0].QuantitativeValue != 5 {
		t.Fatalf("unexpected outcomes: %+v", res.Outcomes)
	}
}

func TestStepDeltaFirstObservationEmitsNothing(t *testing.T) {
	reg := stepFixture()
	sd := NewStepDelta(DefaultReorderBufferSize)
	v1 := 10.0
	res := sd.EvaluatePoint(context.Background(), reg, model.SemanticObservation{PUID: deltaPUID(), PhenomenonTimeStart: 0, ObservationType: model.Numerical, NumericValue: &v1})
	if len(res.Outcomes) != 0 {
		t.Fatalf("expected no outcomes for the first observation in a PUID's stream")
	}
}

func spikeFixture() registry.Getter {
	store := registry.NewMemoryStore()
	p := deltaPUID()
	store.Set(registry.ThresholdsFamilyKey(p, FamilyDeltaSpike), "m1")
	store.Set(registry.GranularityKey(p, FamilyDeltaSpike, "m1"), "single")
	store.Set(registry.MinMaxKey(registry.GranularityKey(p, FamilyDeltaSpike, "m1"), "max", ""), "2")
	return registry.NewClient(store, nil, nil, nil)
}

func TestSpikeDeltaCentredSecondDifference(t *testing.T) {
	reg := spikeFixture()
	p := deltaPUID()
	sp := NewSpikeDelta(DefaultReorderBufferSize)

	v1, v2, v3 := 10.0, 20.0, 10.0
	sp.EvaluatePoint(context.Background(), reg, model.SemanticObservation{PUID: p, PhenomenonTimeStart: 0, ObservationType: model.Numerical, NumericValue: &v1})
	sp.EvaluatePoint(context.Background(), reg, model.SemanticObservation{PUID: p, PhenomenonTimeStart: 1000, ObservationType: model.Numerical, NumericValue: &v2})
	res := sp.EvaluatePoint(context.Background(), reg, model.SemanticObservation{PUID: p, PhenomenonTimeStart: 2000, ObservationType: model.Numerical, NumericValue: &v3})

	// |2*20 - 10 - 10| = 20, vs max 2 -> fail with qv 18
	if len(res.Outcomes) != 1 || res.Outcomes[0].Outcome != model.Fail || res.Outcomes[0].QuantitativeValue != 18 {
		t.Fatalf("unexpected outcomes: %+v", res.Outcomes)
	}
}

func TestDeltaReorderBufferSortsOutOfOrderArrivals(t *testing.T) {
	buf := newReorderBuffer(3)
	p := deltaPUID()
	v1, v2, v3 := 1.0, 2.0, 3.0
	buf.push(model.SemanticObservation{PUID: p, PhenomenonTimeStart: 2000, ObservationType: model.Numerical, NumericValue: &v3})
	buf.push(model.SemanticObservation{PUID: p, PhenomenonTimeStart: 0, ObservationType: model.Numerical, NumericValue: &v1})
	window := buf.push(model.SemanticObservation{PUID: p, PhenomenonTimeStart: 1000, ObservationType: model.Numerical, NumericValue: &v2})

	if len(window) != 3 {
		t.Fatalf("expected 3 buffered observations, got %d", len(window))
	}
	for i := 1; i < len(window); i++ {
		if window[i].PhenomenonTimeStart < window[i-1].PhenomenonTimeStart {
			t.Fatalf("expected buffer contents sorted by event time: %+v", window)
		}
	}
}

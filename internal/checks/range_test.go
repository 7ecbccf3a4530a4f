// v0
// range_test.go
package checks

import (
	"context"
	"testing"

	"github.com/mindis/observation-management-system/internal/model"
	"github.com/mindis/observation-management-system/internal/registry"
)

func rangeFixture(t *testing.T) (registry.Getter, model.PUID) {
	t.Helper()
	store := registry.NewMemoryStore()
	p := model.PUID{Feature: "A", Procedure: "B", ObservableProperty: "C"}
	store.Set(registry.ThresholdsFamilyKey(p, "range"), "m1")
	store.Set(registry.GranularityKey(p, "range", "m1"), "single")
	store.Set(registry.MinMaxKey(registry.GranularityKey(p, "range", "m1"), "min", ""), "0")
	store.Set(registry.MinMaxKey(registry.GranularityKey(p, "range", "m1"), "max", ""), "100")
	return registry.NewClient(store, nil, nil, nil), p
}

func TestRangeFailHigh(t *testing.T) {
	reg, p := rangeFixture(t)
	v := 120.0
	obs := model.SemanticObservation{PUID: p, PhenomenonTimeStart: 1_000_000, ObservationType: model.Numerical, NumericValue: &v}

	res := Range{}.EvaluatePoint(context.Background(), reg, obs)
	if len(res.Outcomes) != 2 {
		t.Fatalf("expected min+max outcomes, got %d", len(res.Outcomes))
	}
	var maxOutcome, minOutcome *model.QCOutcomeQuantitative
	for i := range res.Outcomes {
		o := &res.Outcomes[i]
		if o.TestID == "http://placeholder.catalogue.ceh.ac.uk/qc/range/m1/max" {
			maxOutcome = o
		}
		if o.TestID == "http://placeholder.catalogue.ceh.ac.uk/qc/range/m1/min" {
			minOutcome = o
		}
	}
	if maxOutcome == nil || maxOutcome.Outcome != model.Fail || maxOutcome.QuantitativeValue != 20 {
		t.Fatalf("unexpected max outcome: %+v", maxOutcome)
	}
	if minOutcome == nil || minOutcome.Outcome != model.Pass || minOutcome.QuantitativeValue != 0 {
		t.Fatalf("unexpected min outcome: %+v", minOutcome)
	}
}

func TestRangeMissingRegistryYieldsNoOutcomes(t *testing.T) {
	store := registry.NewMemoryStore()
	reg := registry.NewClient(store, nil, nil, nil)
	v := 50.0
	obs := model.SemanticObservation{
		PUID:                model.PUID{Feature: "A", Procedure: "B", ObservableProperty: "C"},
		PhenomenonTimeStart: 1_000_000,
		ObservationType:     model.Numerical,
		NumericValue:        &v,
	}
	res := Range{}.EvaluatePoint(context.Background(), reg, obs)
	if len(res.Outcomes) != 0 {
		t.Fatalf("expected zero outcomes with no registry entries, got %d", len(res.Outcomes))
	}
}

func TestRangeSkipsNullObservation(t *testing.T) {
	reg, p := rangeFixture(t)
	obs := model.SemanticObservation{PUID: p, ObservationType: model.Numerical}
	res := Range{}.EvaluatePoint(context.Background(), reg, obs)
	if len(res.Outcomes) != 0 {
		t.Fatalf("expected range check to skip a null observation")
	}
}

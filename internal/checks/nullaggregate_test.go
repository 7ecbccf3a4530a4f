// v0
// nullaggregate_test.go
package checks

import (
	"context"
	"testing"

	"github.com/mindis/observation-management-system/internal/model"
	"github.com/mindis/observation-management-system/internal/registry"
)

func TestNullAggregateEmitsEventAtThreshold(t *testing.T) {
	p := model.PUID{Feature: "A", Procedure: "B", ObservableProperty: "C"}
	store := registry.NewMemoryStore()
	store.Set(registry.NullAggregateKey(p, "1h"), "3")
	reg := registry.NewClient(store, nil, nil, nil)

	var obs []model.SemanticObservation
	for i := 0; i < 3; i++ {
		obs = append(obs, model.SemanticObservation{PUID: p, ObservationType: model.Numerical})
	}
	res := NullAggregate{}.EvaluateWindow(context.Background(), reg, p, 0, 3_600_000, obs)
	if len(res.Events) != 1 || res.Events[0].EventDescription != "Consecutive Nulls: 3" {
		t.Fatalf("unexpected events: %+v", res.Events)
	}
}

func TestNullAggregateBelowThresholdEmitsNothing(t *testing.T) {
	p := model.PUID{Feature: "A", Procedure: "B", ObservableProperty: "C"}
	store := registry.NewMemoryStore()
	store.Set(registry.NullAggregateKey(p, "1h"), "5")
	reg := registry.NewClient(store, nil, nil, nil)

	obs := []model.SemanticObservation{{PUID: p, ObservationType: model.Numerical}}
	res := NullAggregate{}.EvaluateWindow(context.Background(), reg, p, 0, 3_600_000, obs)
	if len(res.Events) != 0 {
		t.Fatalf("expected no events below threshold, got %+v", res.Events)
	}
}

func TestNullAggregateNoNullsNoRegistryLookup(t *testing.T) {
	p := model.PUID{Feature: "A", Procedure: "B", ObservableProperty: "C"}
	reg := registry.NewClient(registry.NewMemoryStore(), nil, nil, nil)
	v := 1.0
	obs := []model.SemanticObservation{{PUID: p, ObservationType: model.Numerical, NumericValue: &v}}
	res := NullAggregate{}.EvaluateWindow(context.Background(), reg, p, 0, 3_600_000, obs)
	if len(res.Events) != 0 {
		t.Fatalf("expected no events when no observations are null")
	}
}

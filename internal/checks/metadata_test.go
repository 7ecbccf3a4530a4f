// v0
// metadata_test.go
package checks

import (
	"context"
	"testing"

	"github.com/mindis/observation-management-system/internal/model"
	"github.com/mindis/observation-management-system/internal/registry"
)

func TestMetaIdentityFailsEnumeratedPUID(t *testing.T) {
	p := model.PUID{Feature: "river-avon-01", Procedure: "sensor-42", ObservableProperty: "water-temperature"}
	store := registry.NewMemoryStore()
	store.Set(registry.MetaIdentityEnumKey(p.Feature), "notcleaned")
	store.Set(registry.MetaIdentitySetKey(p.Feature, "notcleaned"), p.String())
	reg := registry.NewClient(store, nil, nil, nil)

	res := MetaIdentity{}.EvaluatePoint(context.Background(), reg, model.SemanticObservation{PUID: p})
	if len(res.Outcomes) != 1 || res.Outcomes[0].Outcome != model.Fail {
		t.Fatalf("expected a fail outcome for an enumerated PUID, got %+v", res.Outcomes)
	}
	if res.Outcomes[0].TestID != "http://placeholder.catalogue.ceh.ac.uk/qc/meta::identity/notcleaned" {
		t.Fatalf("unexpected testId: %s", res.Outcomes[0].TestID)
	}
}

func TestMetaIdentityPassesForUnenumeratedPUID(t *testing.T) {
	p := model.PUID{Feature: "river-avon-01", Procedure: "sensor-42", ObservableProperty: "water-temperature"}
	other := model.PUID{Feature: "river-avon-01", Procedure: "sensor-99", ObservableProperty: "water-temperature"}
	store := registry.NewMemoryStore()
	store.Set(registry.MetaIdentityEnumKey(p.Feature), "maintenance")
	store.Set(registry.MetaIdentitySetKey(p.Feature, "maintenance"), other.String())
	reg := registry.NewClient(store, nil, nil, nil)

	res := MetaIdentity{}.EvaluatePoint(context.Background(), reg, model.SemanticObservation{PUID: p})
	if len(res.Outcomes) != 1 || res.Outcomes[0].Outcome != model.Pass {
		t.Fatalf("expected a single pass outcome for an unenumerated PUID, got %+v", res.Outcomes)
	}
}

func TestMetaValueEmitsPassByDefault(t *testing.T) {
	p := model.PUID{Feature: "river-avon-01", Procedure: "sensor-42", ObservableProperty: "water-temperature"}
	store := registry.NewMemoryStore()
	store.Set(registry.MetaValueEnumKey(p.Feature), "battery")
	store.Set(registry.MetaValueRangeMethodsKey("battery"), "m1")
	store.Set(registry.BaseMethodKey(registry.MetaValueRangeMethodsKey("battery"), "m1"), "single")
	store.Set(registry.MinMaxKey(registry.BaseMethodKey(registry.MetaValueRangeMethodsKey("battery"), "m1"), "max", ""), "12")
	reg := registry.NewClient(store, nil, nil, nil)

	check := MetaValue{SubjectValue: func(obs model.SemanticObservation) (float64, bool) { return 11.8, true }}
	res := check.EvaluatePoint(context.Background(), reg, model.SemanticObservation{PUID: p})
	if len(res.Outcomes) != 1 || res.Outcomes[0].Outcome != model.Pass {
		t.Fatalf("expected a single pass outcome, got %+v", res.Outcomes)
	}
}

func TestMetaValueNoSubjectFunctionEmitsNothing(t *testing.T) {
	p := model.PUID{Feature: "river-avon-01", Procedure: "sensor-42", ObservableProperty: "water-temperature"}
	store := registry.NewMemoryStore()
	store.Set(registry.MetaValueEnumKey(p.Feature), "battery")
	reg := registry.NewClient(store, nil, nil, nil)

	res := MetaValue{}.EvaluatePoint(context.Background(), reg, model.SemanticObservation{PUID: p})
	if len(res.Outcomes) != 0 {
		t.Fatalf("expected no outcomes without a subject-value function")
	}
}

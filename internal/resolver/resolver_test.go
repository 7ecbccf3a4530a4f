// v0
// resolver_test.go
package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/mindis/observation-management-system/internal/model"
	"github.com/mindis/observation-management-system/internal/registry"
)

func rangePUID() model.PUID {
	return model.PUID{Feature: "A", Procedure: "B", ObservableProperty: "C"}
}

func TestResolveFamilySingleGranularity(t *testing.T) {
	store := registry.NewMemoryStore()
	p := rangePUID()
	store.Set(registry.ThresholdsFamilyKey(p, "range"), "m1")
	store.Set(registry.GranularityKey(p, "range", "m1"), "single")
	store.Set(registry.MinMaxKey(registry.GranularityKey(p, "range", "m1"), "min", ""), "0")
	store.Set(registry.MinMaxKey(registry.GranularityKey(p, "range", "m1"), "max", ""), "100")

	r := New(registry.NewClient(store, nil, nil, nil))
	methods := r.ResolveFamily(context.Background(), p, "range", time.UnixMilli(1_000_000))
	if len(methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(methods))
	}
	m := methods[0]
	if m.Name != "m1" || m.Min == nil || *m.Min != 0 || m.Max == nil || *m.Max != 100 {
		t.Fatalf("unexpected method: %+v", m)
	}
}

func TestResolveFamilyAbsentEnumerationYieldsNil(t *testing.T) {
	store := registry.NewMemoryStore()
	r := New(registry.NewClient(store, nil, nil, nil))
	methods := r.ResolveFamily(context.Background(), rangePUID(), "range", time.Now())
	if methods != nil {
		t.Fatalf("expected nil methods when enumeration key is absent, got %+v", methods)
	}
}

func TestResolveFamilySkipsMethodWithoutGranularity(t *testing.T) {
	store := registry.NewMemoryStore()
	p := rangePUID()
	store.Set(registry.ThresholdsFamilyKey(p, "range"), "m1::m2")
	store.Set(registry.GranularityKey(p, "range", "m1"), "single")
	store.Set(registry.MinMaxKey(registry.GranularityKey(p, "range", "m1"), "max", ""), "10")
	// m2 has no granularity tag at all.

	r := New(registry.NewClient(store, nil, nil, nil))
	methods := r.ResolveFamily(context.Background(), p, "range", time.Now())
	if len(methods) != 1 || methods[0].Name != "m1" {
		t.Fatalf("expected only m1 to resolve, got %+v", methods)
	}
}

func TestResolveFamilyHourlyGranularitySuffix(t *testing.T) {
	store := registry.NewMemoryStore()
	p := rangePUID()
	store.Set(registry.ThresholdsFamilyKey(p, "range"), "m1")
	store.Set(registry.GranularityKey(p, "range", "m1"), "hour")
	instant := time.Date(2026, 8, 2, 14, 10, 0, 0, time.UTC)
	suffix := registry.HourSuffix(instant)
	store.Set(registry.MinMaxKey(registry.GranularityKey(p, "range", "m1"), "max", suffix), "55.5")

	r := New(registry.NewClient(store, nil, nil, nil))
	methods := r.ResolveFamily(context.Background(), p, "range", instant)
	if len(methods) != 1 || methods[0].Max == nil || *methods[0].Max != 55.5 {
		t.Fatalf("unexpected: %+v", methods)
	}
}

func TestClassifyWindowBoundaries(t *testing.T) {
	cases := []struct {
		diff int64
		want string
	}{
		{5_400_000 - 1, "1h"},
		{5_400_000, "12h"},
		{45_000_000 - 1, "12h"},
		{45_000_000, "24h"},
	}
	for _, c := range cases {
		if got := ClassifyWindow(0, c.diff); got != c.want {
			t.Fatalf("diff=%d: got %q want %q", c.diff, got, c.want)
		}
	}
}

func TestWindowCentreIsTrueMidpoint(t *testing.T) {
	got := WindowCentre(1_000, 5_000)
	if got.UnixMilli() != 3_000 {
		t.Fatalf("expected midpoint 3000, got %d", got.UnixMilli())
	}
}

func TestResolveSigmaFamilyUsesWindowDurationKey(t *testing.T) {
	store := registry.NewMemoryStore()
	p := rangePUID()
	store.Set(registry.SigmaMethodsKey(p, "1h"), "var1")
	store.Set(registry.SigmaGranularityKey(p, "1h", "var1"), "single")
	store.Set(registry.MinMaxKey(registry.SigmaGranularityKey(p, "1h", "var1"), "max", ""), "2.5")

	r := New(registry.NewClient(store, nil, nil, nil))
	methods := r.ResolveSigmaFamily(context.Background(), p, "1h", time.Now())
	if len(methods) != 1 || methods[0].Max == nil || *methods[0].Max != 2.5 {
		t.Fatalf("unexpected: %+v", methods)
	}
}

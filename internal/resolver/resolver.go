// v0
// Package resolver implements the Threshold Resolver of §4.2: it turns
// a (PUID, family, method, instant, windowDuration?) request into the
// applicable min/max pair, honoring each method's temporal granularity.
package resolver

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/mindis/observation-management-system/internal/model"
	"github.com/mindis/observation-management-system/internal/registry"
)

// Method is one resolved threshold method within a family: its
// granularity tag and the independently-resolved min/max bounds.
type Method struct {
	Name        string
	Granularity string
	Min         *float64
	Max         *float64
}

// Resolver resolves threshold methods against a Getter.
type Resolver struct {
	reg registry.Getter
}

// New builds a Resolver over reg.
func New(reg registry.Getter) *Resolver {
	return &Resolver{reg: reg}
}

// ResolveFamily resolves every method defined for family at instant t,
// per the §4.2 algorithm. An absent method-enumeration key yields a
// nil, non-error result: no tests apply.
func (r *Resolver) ResolveFamily(ctx context.Context, p model.PUID, family string, t time.Time) []Method {
	enumKey := registry.ThresholdsFamilyKey(p, family)
	return r.resolveMethods(ctx, enumKey, func(method string) string {
		return registry.GranularityKey(p, family, method)
	}, t)
}

// ResolveBase resolves methods enumerated directly under an arbitrary
// base key (rather than a PUID-prefixed family), e.g. the meta::value
// check's "<name>::thresholds::range" enumeration, where the
// enumeration key doubles as the base for each method's granularity
// lookup ("<name>::thresholds::range::<method>").
func (r *Resolver) ResolveBase(ctx context.Context, enumKey string, t time.Time) []Method {
	return r.resolveMethods(ctx, enumKey, func(method string) string {
		return registry.BaseMethodKey(enumKey, method)
	}, t)
}

// ResolveSigmaFamily resolves sigma methods for a specific classified
// windowDuration ("1h", "12h", "24h") at the window's centre instant.
func (r *Resolver) ResolveSigmaFamily(ctx context.Context, p model.PUID, windowDuration string, centre time.Time) []Method {
	enumKey := registry.SigmaMethodsKey(p, windowDuration)
	return r.resolveMethods(ctx, enumKey, func(method string) string {
		return registry.SigmaGranularityKey(p, windowDuration, method)
	}, centre)
}

func (r *Resolver) resolveMethods(ctx context.Context, enumKey string, granKey func(method string) string, t time.Time) []Method {
	enum, present := r.reg.Get(ctx, enumKey)
	if !present || enum == "" {
		return nil
	}

	var methods []Method
	for _, name := range strings.Split(enum, "::") {
		if name == "" {
			continue
		}
		granularity, ok := r.reg.Get(ctx, granKey(name))
		if !ok || granularity == "" {
			continue
		}
		suffix := registry.SuffixForGranularity(granularity, t)
		base := granKey(name)
		minVal := r.resolveBound(ctx, registry.MinMaxKey(base, "min", suffix))
		maxVal := r.resolveBound(ctx, registry.MinMaxKey(base, "max", suffix))
		methods = append(methods, Method{Name: name, Granularity: granularity, Min: minVal, Max: maxVal})
	}
	return methods
}

func (r *Resolver) resolveBound(ctx context.Context, key string) *float64 {
	raw, present := r.reg.Get(ctx, key)
	if !present {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &f
}

// ClassifyWindow classifies a window span into "1h", "12h" or "24h"
// per §4.2, using milliseconds consistently for both the per-observation
// sigma path and the event-emission path (resolving §9's unit-consistency
// open question in favor of a single shared function).
func ClassifyWindow(windowStart, windowEnd int64) string {
	diff := windowEnd - windowStart
	switch {
	case diff < 5_400_000:
		return "1h"
	case diff < 45_000_000:
		return "12h"
	default:
		return "24h"
	}
}

// WindowCentre returns the true midpoint of a window span, in epoch ms.
func WindowCentre(windowStart, windowEnd int64) time.Time {
	return time.UnixMilli((windowStart + windowEnd) / 2).UTC()
}

// v0
// keys.go
//
// Compound-key construction per §4.1/§6: parts are joined with the
// literal "::" separator; a leading or trailing "::" is never emitted.
package registry

import (
	"strings"
	"time"

	"github.com/mindis/observation-management-system/internal/model"
)

const sep = "::"

func join(parts ...string) string {
	return strings.Join(parts, sep)
}

// PUIDPrefix returns "feature::procedure::observableproperty".
func PUIDPrefix(p model.PUID) string {
	return join(p.Feature, p.Procedure, p.ObservableProperty)
}

// ThresholdsFamilyKey returns "<PUID>::thresholds::<family>", the
// methods-enumeration key for a check family (range, delta::step,
// delta::spike). Sigma methods are enumerated per window duration
// under SigmaMethodsKey instead.
func ThresholdsFamilyKey(p model.PUID, family string) string {
	return join(PUIDPrefix(p), "thresholds", family)
}

// SigmaMethodsKey returns "<PUID>::thresholds::sigma::<windowDuration>".
func SigmaMethodsKey(p model.PUID, windowDuration string) string {
	return join(PUIDPrefix(p), "thresholds", "sigma", windowDuration)
}

// GranularityKey returns the granularity-tag lookup key for a method
// within a family, e.g. "<PUID>::thresholds::range::<method>".
func GranularityKey(p model.PUID, family, method string) string {
	return join(PUIDPrefix(p), "thresholds", family, method)
}

// SigmaGranularityKey returns
// "<PUID>::thresholds::sigma::<windowDuration>::<method>".
func SigmaGranularityKey(p model.PUID, windowDuration, method string) string {
	return join(PUIDPrefix(p), "thresholds", "sigma", windowDuration, method)
}

// MinMaxKey returns the leaf key for a bound ("min" or "max") under the
// given base key, with an optional time suffix appended for
// non-"single" granularities.
func MinMaxKey(baseKey, bound, suffix string) string {
	if suffix == "" {
		return join(baseKey, bound)
	}
	return join(baseKey, bound, suffix)
}

// DeltaLeafKey returns
// "<PUID>::thresholds::delta::<step|spike>::<method>::<min|max>[::<suffix>]".
func DeltaLeafKey(p model.PUID, kind, method, bound, suffix string) string {
	base := join(PUIDPrefix(p), "thresholds", "delta", kind, method)
	return MinMaxKey(base, bound, suffix)
}

// NullAggregateKey returns
// "<PUID>::thresholds::null::aggregate::<windowDuration>".
func NullAggregateKey(p model.PUID, windowDuration string) string {
	return join(PUIDPrefix(p), "thresholds", "null", "aggregate", windowDuration)
}

// NullConsecutiveKey returns "<PUID>::thresholds::null::consecutive".
func NullConsecutiveKey(p model.PUID) string {
	return join(PUIDPrefix(p), "thresholds", "null", "consecutive")
}

// MetaIdentityEnumKey returns "<feature>::meta::identity".
func MetaIdentityEnumKey(feature string) string {
	return join(feature, "meta", "identity")
}

// MetaIdentitySetKey returns "<feature>::meta::identity::<name>".
func MetaIdentitySetKey(feature, name string) string {
	return join(feature, "meta", "identity", name)
}

// MetaValueEnumKey returns "<feature>::meta::value".
func MetaValueEnumKey(feature string) string {
	return join(feature, "meta", "value")
}

// MetaValueRangeMethodsKey returns "<name>::thresholds::range".
func MetaValueRangeMethodsKey(name string) string {
	return join(name, "thresholds", "range")
}

// BaseMethodKey appends a method segment to an arbitrary base key, for
// resolution paths (like meta::value) keyed by something other than a
// PUID prefix.
func BaseMethodKey(base, method string) string {
	return join(base, method)
}

// HourSuffix formats t rounded to the nearest hour per the granularity
// rule: floor if minute <= 30, else ceil to the next hour.
func HourSuffix(t time.Time) string {
	t = t.UTC()
	if t.Minute() > 30 {
		t = t.Truncate(time.Hour).Add(time.Hour)
	} else {
		t = t.Truncate(time.Hour)
	}
	return t.Format("2006-01-02T15")
}

// DaySuffix formats t truncated to date resolution.
func DaySuffix(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// MonthSuffix formats t at month resolution.
func MonthSuffix(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// SuffixForGranularity derives the time suffix for instant t at the
// given granularity tag. "single" yields an empty suffix.
func SuffixForGranularity(granularity string, t time.Time) string {
	switch granularity {
	case "hour":
		return HourSuffix(t)
	case "day":
		return DaySuffix(t)
	case "month":
		return MonthSuffix(t)
	default: // "single" or unrecognized
		return ""
	}
}

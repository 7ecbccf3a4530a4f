// v0
// metadata.go
//
// MetaIdentity and MetaValue implement §4.8.
package checks

import (
	"context"
	"strings"

	"github.com/mindis/observation-management-system/internal/model"
	"github.com/mindis/observation-management-system/internal/registry"
	"github.com/mindis/observation-management-system/internal/resolver"
)

const (
	FamilyMetaIdentity = "meta::identity"
	FamilyMetaValue    = "meta::value"
)

// MetaIdentity is the point check for the identity half of §4.8: fail
// for every observation whose PUID is enumerated under an active
// identity flag (e.g. "notcleaned", "maintenance"), else pass.
type MetaIdentity struct{}

func (MetaIdentity) Name() string { return "meta-identity" }

func (MetaIdentity) EvaluatePoint(ctx context.Context, reg registry.Getter, obs model.SemanticObservation) Result {
	enum, present := reg.Get(ctx, registry.MetaIdentityEnumKey(obs.PUID.Feature))
	if !present || enum == "" {
		return Result{}
	}

	var out Result
	for _, name := range strings.Split(enum, "::") {
		if name == "" {
			continue
		}
		members, present := reg.Get(ctx, registry.MetaIdentitySetKey(obs.PUID.Feature, name))
		if !present {
			continue
		}
		outcome := model.Pass
		if puidEnumerated(members, obs.PUID) {
			outcome = model.Fail
		}
		out.Outcomes = append(out.Outcomes, model.QCOutcomeQuantitative{
			PUID:              obs.PUID,
			Instant:           obs.PhenomenonTimeStart,
			TestID:            TestIDBase + "/" + FamilyMetaIdentity + "/" + name,
			Outcome:           outcome,
			QuantitativeValue: 0,
		})
	}
	return out
}

// puidEnumerated reports whether p appears among members, a CSV of
// "::"-separated (feature, procedure, observableproperty) triples.
func puidEnumerated(members string, p model.PUID) bool {
	for _, triple := range strings.Split(members, ",") {
		parts := strings.Split(triple, "::")
		if len(parts) != 3 {
			continue
		}
		if parts[0] == p.Feature && parts[1] == p.Procedure && parts[2] == p.ObservableProperty {
			return true
		}
	}
	return false
}

// MetaValue is the point check for the value half of §4.8. The
// subject of comparison is an associated system reading (e.g. a
// battery voltage), supplied by the caller as subjectValue rather than
// the observation's own value — active failure modes are reserved for
// future implementation (§9), so this always emits a pass with zero
// deviation for every resolved method.
type MetaValue struct {
	// SubjectValue, when set, supplies the associated system reading to
	// evaluate. A nil function disables emission entirely.
	SubjectValue func(obs model.SemanticObservation) (float64, bool)
}

func (MetaValue) Name() string { return "meta-value" }

func (v MetaValue) EvaluatePoint(ctx context.Context, reg registry.Getter, obs model.SemanticObservation) Result {
	enum, present := reg.Get(ctx, registry.MetaValueEnumKey(obs.PUID.Feature))
	if !present || enum == "" {
		return Result{}
	}
	if v.SubjectValue == nil {
		return Result{}
	}
	if _, ok := v.SubjectValue(obs); !ok {
		return Result{}
	}

	r := resolver.New(reg)
	var out Result
	for _, name := range strings.Split(enum, "::") {
		if name == "" {
			continue
		}
		methods := r.ResolveBase(ctx, registry.MetaValueRangeMethodsKey(name), obs.Instant())
		for _, m := range methods {
			if m.Min != nil {
				out.Outcomes = append(out.Outcomes, model.QCOutcomeQuantitative{
					PUID: obs.PUID, Instant: obs.PhenomenonTimeStart,
					TestID: TestIDBase + "/" + FamilyMetaValue + "/" + name + "/" + m.Name + "/min",
					Outcome: model.Pass, QuantitativeValue: 0,
				})
			}
			if m.Max != nil {
				out.Outcomes = append(out.Outcomes, model.QCOutcomeQuantitative{
					PUID: obs.PUID, Instant: obs.PhenomenonTimeStart,
					TestID: TestIDBase + "/" + FamilyMetaValue + "/" + name + "/" + m.Name + "/max",
					Outcome: model.Pass, QuantitativeValue: 0,
				})
			}
		}
	}
	return out
}

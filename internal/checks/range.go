// v0
// range.go
//
// Range implements §4.3: per numeric observation, resolve the "range"
// threshold family and emit a pass/fail outcome per method per bound.
package checks

import (
	"context"
	"fmt"

	"github.com/mindis/observation-management-system/internal/model"
	"github.com/mindis/observation-management-system/internal/registry"
	"github.com/mindis/observation-management-system/internal/resolver"
)

const FamilyRange = "range"

// Range is the point check for §4.3.
type Range struct{}

func (Range) Name() string { return "range" }

func (Range) EvaluatePoint(ctx context.Context, reg registry.Getter, obs model.SemanticObservation) Result {
	if obs.ObservationType != model.Numerical || obs.NumericValue == nil {
		return Result{}
	}
	value := *obs.NumericValue

	r := resolver.New(reg)
	methods := r.ResolveFamily(ctx, obs.PUID, FamilyRange, obs.Instant())

	var out Result
	for _, m := range methods {
		if m.Min != nil {
			failed := value < *m.Min
			qv := *m.Min - value
			if !failed {
				qv = 0
			}
			out.Outcomes = append(out.Outcomes, outcomeFor(obs, FamilyRange, m.Name, "min", boolToOutcome(failed), qv))
		}
		if m.Max != nil {
			failed := value > *m.Max
			qv := value - *m.Max
			if !failed {
				qv = 0
			}
			out.Outcomes = append(out.Outcomes, outcomeFor(obs, FamilyRange, m.Name, "max", boolToOutcome(failed), qv))
		}
	}
	return out
}

// outcomeFor builds the common testId shape "<base>/qc/<family>/<method>/<bound>".
func outcomeFor(obs model.SemanticObservation, family, method, bound string, outcome model.Outcome, qv float64) model.QCOutcomeQuantitative {
	return model.QCOutcomeQuantitative{
		PUID:              obs.PUID,
		Instant:           obs.PhenomenonTimeStart,
		TestID:            fmt.Sprintf("%s/%s/%s/%s", TestIDBase, family, method, bound),
		Outcome:           outcome,
		QuantitativeValue: qv,
	}
}

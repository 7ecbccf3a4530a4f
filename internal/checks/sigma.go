// v0
// sigma.go
//
// Sigma implements §4.5: a window check over tumbling {1h,12h,24h}
// windows, comparing the window's Welford sample variance to
// thresholds resolved at the window's true centre instant.
package checks

import (
	"context"

	"github.com/mindis/observation-management-system/internal/model"
	"github.com/mindis/observation-management-system/internal/registry"
	"github.com/mindis/observation-management-system/internal/resolver"
)

const FamilySigma = "sigma"

// Sigma is the window check for §4.5.
type Sigma struct{}

func (Sigma) Name() string { return "sigma" }

func (Sigma) EvaluateWindow(ctx context.Context, reg registry.Getter, puid model.PUID, windowStart, windowEnd int64, obs []model.SemanticObservation) Result {
	var acc WelfordAccumulator
	for _, o := range obs {
		if o.ObservationType == model.Numerical && o.NumericValue != nil {
			acc.Add(*o.NumericValue)
		}
	}
	if acc.Count() < 2 {
		return Result{}
	}
	variance := acc.Variance()

	windowDuration := resolver.ClassifyWindow(windowStart, windowEnd)
	centre := resolver.WindowCentre(windowStart, windowEnd)

	r := resolver.New(reg)
	methods := r.ResolveSigmaFamily(ctx, puid, windowDuration, centre)

	var out Result
	for _, m := range methods {
		if m.Min != nil {
			failed := variance < *m.Min
			qv := *m.Min - variance
			if !failed {
				qv = 0
			}
			out.Outcomes = append(out.Outcomes, sigmaOutcomes(obs, windowDuration, m.Name, "min", boolToOutcome(failed), qv)...)
		}
		if m.Max != nil {
			failed := variance > *m.Max
			qv := variance - *m.Max
			if !failed {
				qv = 0
			}
			out.Outcomes = append(out.Outcomes, sigmaOutcomes(obs, windowDuration, m.Name, "max", boolToOutcome(failed), qv)...)
		}
	}
	return out
}

// sigmaOutcomes fans the window-level verdict out to every contributing
// observation, so downstream joins can attribute it per point.
func sigmaOutcomes(obs []model.SemanticObservation, windowDuration, method, bound string, outcome model.Outcome, qv float64) []model.QCOutcomeQuantitative {
	testID := TestIDBase + "/" + FamilySigma + "/" + windowDuration + "/" + method + "/" + bound
	out := make([]model.QCOutcomeQuantitative, 0, len(obs))
	for _, o := range obs {
		out = append(out, model.QCOutcomeQuantitative{
			PUID:              o.PUID,
			Instant:           o.PhenomenonTimeStart,
			TestID:            testID,
			Outcome:           outcome,
			QuantitativeValue: qv,
		})
	}
	return out
}

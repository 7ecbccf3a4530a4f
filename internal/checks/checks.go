// v0
// Package checks implements the closed variant set of QC checks named
// in the spec's redesign notes: Range, StepDelta, SpikeDelta, Sigma,
// NullAggregate, NullConsecutive, MetaIdentity, MetaValue. Each check's
// outcomes depend only on its input and a registry snapshot: StepDelta,
// SpikeDelta and NullConsecutive also keep per-PUID state from earlier
// observations, the others are pure functions of one observation or
// closed window. Replaying the same input stream against the same
// snapshot always yields the same outcomes.
package checks

import (
	"context"

	"github.com/mindis/observation-management-system/internal/model"
	"github.com/mindis/observation-management-system/internal/registry"
)

// TestIDBase is the fixed root every emitted testId is built under.
const TestIDBase = "http://placeholder.catalogue.ceh.ac.uk/qc"

// Result carries the outcomes and events a single check invocation
// produced, so the engine can dispatch both uniformly.
type Result struct {
	Outcomes []model.QCOutcomeQuantitative
	Events   []model.QCEvent
}

// PointCheck evaluates a single observation against the registry.
type PointCheck interface {
	Name() string
	EvaluatePoint(ctx context.Context, reg registry.Getter, obs model.SemanticObservation) Result
}

// WindowCheck evaluates a closed tumbling window of observations for
// one PUID against the registry.
type WindowCheck interface {
	Name() string
	EvaluateWindow(ctx context.Context, reg registry.Getter, puid model.PUID, windowStart, windowEnd int64, obs []model.SemanticObservation) Result
}

func boolToOutcome(failed bool) model.Outcome {
	if failed {
		return model.Fail
	}
	return model.Pass
}

// v0
// nullaggregate.go
//
// NullAggregate implements §4.6: over the null subset of a tumbling
// window, emit a QCEvent if the null count meets a resolved threshold.
package checks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mindis/observation-management-system/internal/model"
	"github.com/mindis/observation-management-system/internal/registry"
	"github.com/mindis/observation-management-system/internal/resolver"
)

const FamilyNullAggregate = "null::aggregate"

// NullAggregate is the window check for §4.6. The caller is expected
// to have already filtered obs to the null subset; EvaluateWindow
// filters again defensively so it is safe against a mixed window too.
type NullAggregate struct{}

func (NullAggregate) Name() string { return "null-aggregate" }

func (NullAggregate) EvaluateWindow(ctx context.Context, reg registry.Getter, puid model.PUID, windowStart, windowEnd int64, obs []model.SemanticObservation) Result {
	n := 0
	for _, o := range obs {
		if o.IsNull() {
			n++
		}
	}
	if n == 0 {
		return Result{}
	}

	windowDuration := resolver.ClassifyWindow(windowStart, windowEnd)
	raw, present := reg.Get(ctx, registry.NullAggregateKey(puid, windowDuration))
	if !present {
		return Result{}
	}
	threshold, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return Result{}
	}
	if int64(n) < threshold {
		return Result{}
	}

	return Result{Events: []model.QCEvent{{
		PUID:             puid,
		EventDescription: fmt.Sprintf("Consecutive Nulls: %d", n),
		WindowStart:      windowStart,
		WindowEnd:        windowEnd,
	}}}
}

// v0
// Package engine dispatches each observation to the registered point
// and windowed checks, mirroring the shape of the teacher's Engine.Run
// loop (services/mape/internal/engine.go) but fanning a single
// observation out across a fixed set of check operators instead of
// driving a fixed per-zone monitor/analyze/plan/execute pipeline.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/mindis/observation-management-system/internal/checks"
	"github.com/mindis/observation-management-system/internal/kafkaio"
	"github.com/mindis/observation-management-system/internal/logging"
	"github.com/mindis/observation-management-system/internal/metrics"
	"github.com/mindis/observation-management-system/internal/model"
	"github.com/mindis/observation-management-system/internal/registry"
)

// Stats tracks lightweight run counters, mirroring the teacher's Stats
// struct exposed for operator visibility.
type Stats struct {
	ObservationsIn int64
	OutcomesOut    int64
	EventsOut      int64
	DispatchPanics int64
}

// Engine owns the fixed set of point and window checks and drives the
// observation loop.
type Engine struct {
	cfg Config
	lg  *slog.Logger
	io  *kafkaio.IO
	reg registry.Getter
	m   *metrics.Metrics

	pointChecks []checks.PointCheck

	sigma1h, sigma12h, sigma24h *checks.TumblingWindowStore
	nullAgg1h, nullAgg12h, nullAgg24h *checks.TumblingWindowStore
	sigmaCheck checks.Sigma
	nullAggCheck checks.NullAggregate

	warner *logging.RateLimitedWarner

	stats Stats
}

// Config configures the delta checks' reorder buffer depth; window
// sizes and the check set are fixed.
type Config struct {
	ReorderBufferSize int
}

// New builds an Engine wired with the full closed check variant set:
// Range, StepDelta, SpikeDelta, NullConsecutive, MetaIdentity and
// MetaValue as point checks, and Sigma/NullAggregate as windowed checks
// over tumbling {1h,12h,24h}.
func New(cfg Config, lg *slog.Logger, io *kafkaio.IO, reg registry.Getter, m *metrics.Metrics, warner *logging.RateLimitedWarner) *Engine {
	bufSize := cfg.ReorderBufferSize
	if bufSize <= 0 {
		bufSize = checks.DefaultReorderBufferSize
	}
	return &Engine{
		cfg: cfg,
		lg:  lg,
		io:  io,
		reg: reg,
		m:   m,
		pointChecks: []checks.PointCheck{
			checks.Range{},
			checks.NewStepDelta(bufSize),
			checks.NewSpikeDelta(bufSize),
			checks.NewNullConsecutive(),
			checks.MetaIdentity{},
			checks.MetaValue{},
		},
		sigma1h:      checks.NewTumblingWindowStore(time.Hour),
		sigma12h:     checks.NewTumblingWindowStore(12 * time.Hour),
		sigma24h:     checks.NewTumblingWindowStore(24 * time.Hour),
		nullAgg1h:    checks.NewTumblingWindowStore(time.Hour),
		nullAgg12h:   checks.NewTumblingWindowStore(12 * time.Hour),
		nullAgg24h:   checks.NewTumblingWindowStore(24 * time.Hour),
		warner:       warner,
	}
}

// Run consumes observations until ctx is cancelled, dispatching each
// to every check and publishing the resulting outcomes/events.
func (e *Engine) Run(ctx context.Context) {
	e.lg.Info("engine start")
	for {
		select {
		case <-ctx.Done():
			e.lg.Info("engine stop")
			return
		default:
		}

		obs, err := e.io.FetchObservation(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			e.warner.Warn("fetch-observation", "failed to fetch next observation", "error", err.Error())
			continue
		}
		e.stats.ObservationsIn++
		if e.m != nil {
			e.m.ObservationsIn.Inc()
		}
		e.dispatch(ctx, obs)
	}
}

// dispatch fans obs out across every check, recovering from any panic
// at this boundary so one bad check cannot take down the stream (§7
// error kind 5).
func (e *Engine) dispatch(ctx context.Context, obs model.SemanticObservation) {
	defer func() {
		if r := recover(); r != nil {
			e.stats.DispatchPanics++
			if e.m != nil {
				e.m.DispatchPanics.Inc()
			}
			e.lg.Error("recovered panic during dispatch", "puid", obs.PUID.String(), "panic", r)
		}
	}()

	for _, c := range e.pointChecks {
		res := c.EvaluatePoint(ctx, e.reg, obs)
		e.publish(ctx, c.Name(), res)
	}

	if obs.ObservationType == model.Numerical {
		if obs.NumericValue != nil {
			e.feedSigma(ctx, obs)
		} else {
			e.feedNullAggregate(ctx, obs)
		}
	}
}

func (e *Engine) feedSigma(ctx context.Context, obs model.SemanticObservation) {
	for _, store := range []*checks.TumblingWindowStore{e.sigma1h, e.sigma12h, e.sigma24h} {
		if closed, ok := store.Add(obs); ok {
			res := e.sigmaCheck.EvaluateWindow(ctx, e.reg, closed.PUID, closed.WindowStart, closed.WindowEnd, closed.Obs)
			e.publish(ctx, "sigma", res)
		}
	}
}

func (e *Engine) feedNullAggregate(ctx context.Context, obs model.SemanticObservation) {
	for _, store := range []*checks.TumblingWindowStore{e.nullAgg1h, e.nullAgg12h, e.nullAgg24h} {
		if closed, ok := store.Add(obs); ok {
			res := e.nullAggCheck.EvaluateWindow(ctx, e.reg, closed.PUID, closed.WindowStart, closed.WindowEnd, closed.Obs)
			e.publish(ctx, "null-aggregate", res)
		}
	}
}

func (e *Engine) publish(ctx context.Context, checkName string, res checks.Result) {
	for _, o := range res.Outcomes {
		if err := e.io.PublishOutcome(ctx, o); err != nil {
			e.warner.Warn("publish-outcome:"+checkName, "failed to publish outcome", "error", err.Error())
			continue
		}
		e.stats.OutcomesOut++
		if e.m != nil {
			e.m.CheckOutcomes.WithLabelValues(checkName, o.TestID, string(o.Outcome)).Inc()
		}
	}
	for _, ev := range res.Events {
		if err := e.io.PublishEvent(ctx, ev); err != nil {
			e.warner.Warn("publish-event:"+checkName, "failed to publish event", "error", err.Error())
			continue
		}
		e.stats.EventsOut++
		if e.m != nil {
			e.m.EventsEmitted.WithLabelValues(checkName).Inc()
		}
	}
}

// Stats returns a snapshot of the engine's run counters.
func (e *Engine) Stats() Stats { return e.stats }

// Flush force-closes every open window, for graceful shutdown.
func (e *Engine) Flush(ctx context.Context) {
	for _, store := range []*checks.TumblingWindowStore{e.sigma1h, e.sigma12h, e.sigma24h} {
		for _, c := range store.Flush() {
			res := e.sigmaCheck.EvaluateWindow(ctx, e.reg, c.PUID, c.WindowStart, c.WindowEnd, c.Obs)
			e.publish(ctx, "sigma", res)
		}
	}
	for _, store := range []*checks.TumblingWindowStore{e.nullAgg1h, e.nullAgg12h, e.nullAgg24h} {
		for _, c := range store.Flush() {
			res := e.nullAggCheck.EvaluateWindow(ctx, e.reg, c.PUID, c.WindowStart, c.WindowEnd, c.Obs)
			e.publish(ctx, "null-aggregate", res)
		}
	}
}

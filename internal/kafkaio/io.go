// v0
// Package kafkaio wires the engine to Kafka: a consumer-group reader
// over the observation topic, and writers for the outcome and event
// topics, each guarded by a resilience.Guard the way the teacher's
// KafkaIO wraps readers/writers with a circuitbreaker
// (services/mape/internal/kafka.go). Unlike the teacher's fixed
// zone-to-partition assignment, the observation topic is consumed via
// a consumer group: PUID cardinality is unbounded, so there is no
// fixed partition-per-key mapping to assign ahead of time.
package kafkaio

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/mindis/observation-management-system/internal/model"
	"github.com/mindis/observation-management-system/internal/resilience"
)

// IO bundles the reader and writers the engine depends on.
type IO struct {
	lg *slog.Logger

	reader      *kafka.Reader
	readerGuard *resilience.Guard
	outcomeWr   *kafka.Writer
	eventWr     *kafka.Writer
	writerGuard *resilience.Guard
}

// Config names the brokers and topics IO connects to.
type Config struct {
	Brokers        []string
	ObservationTopic string
	OutcomeTopic   string
	EventTopic     string
	ConsumerGroup  string
}

// New builds an IO, wiring a breaker-guarded reader and writers.
func New(cfg Config, lg *slog.Logger, readerBreaker, writerBreaker *resilience.Breaker, timeout time.Duration) *IO {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.ObservationTopic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  200 * time.Millisecond,
	})
	outcomeWr := &kafka.Writer{Addr: kafka.TCP(cfg.Brokers...), Topic: cfg.OutcomeTopic, Balancer: &kafka.Hash{}, RequiredAcks: kafka.RequireAll}
	eventWr := &kafka.Writer{Addr: kafka.TCP(cfg.Brokers...), Topic: cfg.EventTopic, Balancer: &kafka.Hash{}, RequiredAcks: kafka.RequireAll}

	return &IO{
		lg:          lg,
		reader:      reader,
		readerGuard: resilience.NewGuard(readerBreaker, timeout),
		outcomeWr:   outcomeWr,
		eventWr:     eventWr,
		writerGuard: resilience.NewGuard(writerBreaker, timeout),
	}
}

// Close shuts down the reader and writers.
func (io_ *IO) Close() {
	if err := io_.reader.Close(); err != nil {
		io_.lg.Warn("observation reader close", "error", err)
	}
	if err := io_.outcomeWr.Close(); err != nil {
		io_.lg.Warn("outcome writer close", "error", err)
	}
	if err := io_.eventWr.Close(); err != nil {
		io_.lg.Warn("event writer close", "error", err)
	}
}

// FetchObservation blocks for the next observation message, decoding
// its JSON body into a SemanticObservation. A cancellation aborts the
// fetch without returning a partial record, per §5's cancellation
// guarantee.
func (io_ *IO) FetchObservation(ctx context.Context) (model.SemanticObservation, error) {
	var obs model.SemanticObservation
	err := io_.readerGuard.Do(ctx, func(ctx context.Context) error {
		msg, err := io_.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(msg.Value, &obs); err != nil {
			return fmt.Errorf("decode observation: %w", err)
		}
		return io_.reader.CommitMessages(ctx, msg)
	})
	if err != nil {
		return model.SemanticObservation{}, err
	}
	return obs, nil
}

// PublishOutcome writes a quantitative QC outcome to the outcome topic.
// Each message carries a fresh correlation-id header so an operator can
// trace one outcome through downstream logs without relying on the
// PUID/instant pair alone, which repeats across checks for the same
// observation.
func (io_ *IO) PublishOutcome(ctx context.Context, o model.QCOutcomeQuantitative) error {
	b, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	cid := uuid.NewString()
	err = io_.writerGuard.Do(ctx, func(ctx context.Context) error {
		return io_.outcomeWr.WriteMessages(ctx, kafka.Message{
			Key:     []byte(o.PUID.String()),
			Value:   b,
			Time:    time.Now(),
			Headers: []kafka.Header{{Key: "correlation-id", Value: []byte(cid)}},
		})
	})
	if err != nil {
		io_.lg.Warn("publish outcome failed", "correlation-id", cid, "error", err)
	}
	return err
}

// PublishEvent writes a QC event to the event topic.
func (io_ *IO) PublishEvent(ctx context.Context, e model.QCEvent) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	cid := uuid.NewString()
	err = io_.writerGuard.Do(ctx, func(ctx context.Context) error {
		return io_.eventWr.WriteMessages(ctx, kafka.Message{
			Key:     []byte(e.PUID.String()),
			Value:   b,
			Time:    time.Now(),
			Headers: []kafka.Header{{Key: "correlation-id", Value: []byte(cid)}},
		})
	})
	if err != nil {
		io_.lg.Warn("publish event failed", "correlation-id", cid, "error", err)
	}
	return err
}

// v0
// cmd/streamqc/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mindis/observation-management-system/internal/config"
	"github.com/mindis/observation-management-system/internal/engine"
	"github.com/mindis/observation-management-system/internal/httpapi"
	"github.com/mindis/observation-management-system/internal/kafkaio"
	"github.com/mindis/observation-management-system/internal/logging"
	"github.com/mindis/observation-management-system/internal/metrics"
	"github.com/mindis/observation-management-system/internal/registry"
	"github.com/mindis/observation-management-system/internal/resilience"
)

func main() {
	lg, lf := logging.Init()
	defer func() {
		if err := lf.Close(); err != nil {
			lg.Error("log file close", "error", err)
		}
	}()
	lg.Info("streamqc starting")

	cfg, err := config.LoadEnvAndFiles()
	if err != nil {
		lg.Error("config", "error", err)
		os.Exit(1)
	}
	lg.Info("config loaded", "brokers", cfg.KafkaBrokers, "observationTopic", cfg.ObservationTopic)

	// the default registerer is the one promhttp.Handler() serves at /metrics.
	m := metrics.New(prometheus.DefaultRegisterer)

	store, err := registry.OpenBadgerStore(cfg.RegistryDBPath)
	if err != nil {
		lg.Error("registry store open", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			lg.Error("registry store close", "error", err)
		}
	}()

	cache := registry.NewCache(cfg.CacheTTL, m)
	registryBreaker := resilience.New("registry-store", resilience.Config{MaxFailures: 3, ResetTimeout: 10 * time.Second}, lg)
	registryGuard := resilience.NewGuard(registryBreaker, cfg.RegistryTimeout)
	warner := logging.NewRateLimitedWarner(lg, time.Minute)
	client := registry.NewClient(store, cache, registryGuard, warner)

	readerBreaker := resilience.New("kafka-reader", resilience.Config{MaxFailures: 5, ResetTimeout: 10 * time.Second}, lg)
	writerBreaker := resilience.New("kafka-writer", resilience.Config{MaxFailures: 5, ResetTimeout: 10 * time.Second}, lg)
	io := kafkaio.New(kafkaio.Config{
		Brokers:          cfg.KafkaBrokers,
		ObservationTopic: cfg.ObservationTopic,
		OutcomeTopic:     cfg.OutcomeTopic,
		EventTopic:       cfg.EventTopic,
		ConsumerGroup:    cfg.ConsumerGroup,
	}, lg, readerBreaker, writerBreaker, cfg.RegistryTimeout)
	defer io.Close()

	eng := engine.New(engine.Config{ReorderBufferSize: cfg.DeltaReorderBuffer}, lg, io, client, m, warner)

	srv := httpapi.New(cfg, lg, func() any { return eng.Stats() })
	go func() {
		if err := srv.Start(); err != nil {
			lg.Error("http", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go eng.Run(ctx)

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	cancel()
	eng.Flush(context.Background())

	sh, c := context.WithTimeout(context.Background(), 5*time.Second)
	defer c()
	_ = srv.Stop(sh)
	lg.Info("streamqc stopped")
}

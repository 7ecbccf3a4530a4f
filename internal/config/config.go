// v0
// config.go
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig holds runtime configuration for the QC engine: kafka wiring,
// registry backend location, and cache/breaker tunables.
type AppConfig struct {
	HTTPBind string

	KafkaBrokers    []string
	ObservationTopic string
	OutcomeTopic    string
	EventTopic      string
	ConsumerGroup   string

	RegistryDBPath string

	CacheTTL       time.Duration
	RegistryTimeout time.Duration

	DeltaReorderBuffer int
	NullConsecutiveMax int // not set by LoadEnvAndFiles and not read by any component; NullConsecutive keeps every PUID it sees, with no eviction

	PropertiesPath string
}

// LoadEnvAndFiles reads environment variables and the properties file,
// mirroring the teacher's layered env-then-file configuration.
func LoadEnvAndFiles() (*AppConfig, error) {
	c := &AppConfig{
		HTTPBind:           getenv("HTTP_BIND", ":8080"),
		KafkaBrokers:       split(getenv("KAFKA_BROKERS", ""), ","),
		ObservationTopic:   getenv("OBSERVATION_TOPIC", "semantic.observations"),
		OutcomeTopic:       getenv("OUTCOME_TOPIC", "qc.outcomes"),
		EventTopic:         getenv("EVENT_TOPIC", "qc.events"),
		ConsumerGroup:      getenv("CONSUMER_GROUP", "qc-engine"),
		RegistryDBPath:     getenv("REGISTRY_DB_PATH", "./data/registry"),
		CacheTTL:           time.Duration(geti("CACHE_TTL_SECONDS", 30)) * time.Second,
		RegistryTimeout:    time.Duration(geti("REGISTRY_TIMEOUT_MS", 2000)) * time.Millisecond,
		DeltaReorderBuffer: geti("DELTA_REORDER_BUFFER", 3),
		PropertiesPath:     getenv("PROPERTIES_PATH", "./configs/qc.properties"),
	}
	if len(c.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS required")
	}
	if err := c.loadProperties(c.PropertiesPath); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if c.CacheTTL > 60*time.Second {
		return nil, fmt.Errorf("CACHE_TTL_SECONDS must be <= 60 (got %s)", c.CacheTTL)
	}
	return c, nil
}

// ReloadProperties re-reads the optional properties overlay file.
func (c *AppConfig) ReloadProperties() error { return c.loadProperties(c.PropertiesPath) }

// loadProperties applies an optional key=value overlay on top of the
// environment-derived defaults. A missing file is reported as a
// not-exist error, which LoadEnvAndFiles tolerates so the engine runs
// on env/defaults alone; ReloadProperties returns it to its caller.
func (c *AppConfig) loadProperties(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		switch k {
		case "delta.reorder.buffer":
			if n, err := strconv.Atoi(v); err == nil {
				c.DeltaReorderBuffer = n
			}
		case "cache.ttl.seconds":
			if n, err := strconv.Atoi(v); err == nil {
				c.CacheTTL = time.Duration(n) * time.Second
			}
		case "registry.timeout.ms":
			if n, err := strconv.Atoi(v); err == nil {
				c.RegistryTimeout = time.Duration(n) * time.Millisecond
			}
		}
	}
	return s.Err()
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func geti(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return d
}

func split(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

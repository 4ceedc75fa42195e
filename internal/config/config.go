package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Reference-data cache configuration.
	RefCacheTTL   time.Duration
	RefCacheSize  int
	RefCacheSweep time.Duration
	SearchLimit   int

	// Optional overrides for the embedded reference datasets.
	AirportsPath string
	AirlinesPath string
	RoutesPath   string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	batchSize, err := envInt("BATCH_SIZE", 50)
	if err != nil {
		return nil, err
	}

	flushInterval, err := envDuration("BATCH_FLUSH_INTERVAL", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}

	cacheTTL, err := envDuration("REFDATA_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	cacheSweep, err := envDuration("REFDATA_CACHE_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	cacheSize, err := envInt("REFDATA_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	searchLimit, err := envInt("REFDATA_SEARCH_LIMIT", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       splitBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   envOrDefault("KAFKA_SOURCE_TOPIC", "claim-submissions"),
		KafkaSinkTopic:     envOrDefault("KAFKA_SINK_TOPIC", "claim-decisions"),
		KafkaGroupID:       envOrDefault("KAFKA_GROUP_ID", "claims-engine"),
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		RefCacheTTL:   cacheTTL,
		RefCacheSize:  cacheSize,
		RefCacheSweep: cacheSweep,
		SearchLimit:   searchLimit,

		AirportsPath: os.Getenv("AIRPORTS_PATH"),
		AirlinesPath: os.Getenv("AIRLINES_PATH"),
		RoutesPath:   os.Getenv("ROUTES_PATH"),
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func envInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func splitBrokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

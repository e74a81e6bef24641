package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upstream API configuration.
	MarineAPIURL    string
	OBISAPIURL      string
	GBIFAPIURL      string
	UpstreamTimeout time.Duration
	OBISResultSize  int
	GBIFResultLimit int

	// Upstream response cache.
	CacheSize int
	CacheTTL  time.Duration

	MockFallback  bool
	ChartsEnabled bool

	// StorePath selects a SQLite file for last-used coordinates; empty keeps them in memory.
	StorePath string

	// Snapshot publishing.
	KafkaEnabled      bool
	KafkaBrokers      []string
	KafkaSummaryTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	upstreamTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("UPSTREAM_TIMEOUT", "15s"))
	if err != nil || upstreamTimeout <= 0 {
		return nil, errors.New("invalid UPSTREAM_TIMEOUT")
	}

	cacheTTL, err := time.ParseDuration(sharedcfg.EnvOrDefault("CACHE_TTL", "10m"))
	if err != nil || cacheTTL <= 0 {
		return nil, errors.New("invalid CACHE_TTL")
	}

	obisSize, err := parseIntRange("OBIS_RESULT_SIZE", 100, 1, 1000)
	if err != nil {
		return nil, err
	}

	gbifLimit, err := parseIntRange("GBIF_RESULT_LIMIT", 50, 1, 300)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		MarineAPIURL:    sharedcfg.EnvOrDefault("MARINE_API_URL", "https://marine-api.open-meteo.com/v1/marine"),
		OBISAPIURL:      sharedcfg.EnvOrDefault("OBIS_API_URL", "https://api.obis.org/v3/occurrence"),
		GBIFAPIURL:      sharedcfg.EnvOrDefault("GBIF_API_URL", "https://api.gbif.org/v1/occurrence/search"),
		UpstreamTimeout: upstreamTimeout,
		OBISResultSize:  obisSize,
		GBIFResultLimit: gbifLimit,

		CacheSize: parseCacheSize(),
		CacheTTL:  cacheTTL,

		MockFallback:  os.Getenv("MOCK_FALLBACK") == "true",
		ChartsEnabled: sharedcfg.EnvOrDefault("CHARTS_ENABLED", "true") == "true",

		StorePath: os.Getenv("STORE_PATH"),

		KafkaEnabled:      os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:      sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSummaryTopic: sharedcfg.EnvOrDefault("KAFKA_SUMMARY_TOPIC", "ocean-dashboard-snapshots"),
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}

	return cfg, nil
}

func parseIntRange(key string, def, lo, hi int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, errors.New("invalid " + key + ": must be " + strconv.Itoa(lo) + "-" + strconv.Itoa(hi))
	}
	return n, nil
}

func parseCacheSize() int {
	if s := os.Getenv("CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 256
}

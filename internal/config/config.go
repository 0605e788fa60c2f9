package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	Hazards HazardsConfig
	Ranker  RankerConfig
	Scoring ScoringConfig
	Batch   BatchConfig
	DB      DatabaseConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	RateLimitRPS float64
}

type HazardsConfig struct {
	USGSEnabled    bool
	USGSURL        string
	NWSEnabled     bool
	NWSURL         string
	NWSUserAgent   string
	PollInterval   time.Duration
	NearbyRadiusKm float64
}

type RankerConfig struct {
	Provider      string
	Model         string
	Temperature   float64
	Timeout       time.Duration
	CacheTTL      time.Duration
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string
}

type ScoringConfig struct {
	DistanceProfile string
}

type BatchConfig struct {
	Workers     int
	MaxRequests int
}

type DatabaseConfig struct {
	Path     string
	SeedPath string
}

type LoggingConfig struct {
	Level string
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// Load reads the full service configuration from the environment.
func Load() (*Config, error) {
	cfg := fromEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadHazards is Load for tools that only poll hazard feeds; ranker, scoring
// and storage settings are read but not validated.
func LoadHazards() (*Config, error) {
	cfg := fromEnv()
	if err := cfg.validateLogging(); err != nil {
		return nil, err
	}
	if err := cfg.validateHazards(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "localhost"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			RateLimitRPS: getEnvFloat("RATE_LIMIT_RPS", 5),
		},
		Hazards: HazardsConfig{
			USGSEnabled:    getEnvBool("USGS_ENABLED", true),
			USGSURL:        getEnv("USGS_URL", "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson"),
			NWSEnabled:     getEnvBool("NWS_ENABLED", true),
			NWSURL:         getEnv("NWS_URL", "https://api.weather.gov/alerts/active"),
			NWSUserAgent:   getEnv("NWS_USER_AGENT", "go-shelter-advisor (ops@example.com)"),
			PollInterval:   getEnvDuration("HAZARD_POLL_INTERVAL", 5*time.Minute),
			NearbyRadiusKm: getEnvFloat("NEARBY_RADIUS_KM", 50),
		},
		Ranker: RankerConfig{
			Provider:      strings.ToLower(getEnv("RANKER_PROVIDER", ProviderOpenAI)),
			Model:         getEnv("RANKER_MODEL", ""),
			Temperature:   getEnvFloat("RANKER_TEMPERATURE", 0.2),
			Timeout:       getEnvDuration("RANKER_TIMEOUT", 12*time.Second),
			CacheTTL:      getEnvDuration("RANKER_CACHE_TTL", 10*time.Minute),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		},
		Scoring: ScoringConfig{
			DistanceProfile: strings.ToLower(getEnv("DISTANCE_PROFILE", "wide")),
		},
		Batch: BatchConfig{
			Workers:     getEnvInt("BATCH_WORKERS", 4),
			MaxRequests: getEnvInt("BATCH_MAX_REQUESTS", 25),
		},
		DB: DatabaseConfig{
			Path:     getEnv("DB_PATH", "./data/shelters.db"),
			SeedPath: getEnv("SHELTER_SEED_PATH", "./data/shelters.yaml"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v", c.Server.RateLimitRPS)
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateHazards(); err != nil {
		return err
	}

	switch c.Ranker.Provider {
	case ProviderOpenAI:
		if c.Ranker.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when RANKER_PROVIDER=openai")
		}
	case ProviderGemini:
		if c.Ranker.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when RANKER_PROVIDER=gemini")
		}
	case ProviderNone:
	default:
		return fmt.Errorf("invalid ranker provider: %s", c.Ranker.Provider)
	}
	if c.Ranker.Timeout < time.Second || c.Ranker.Timeout > time.Minute {
		return fmt.Errorf("ranker timeout must be between 1s and 60s, got %s", c.Ranker.Timeout)
	}
	if c.Ranker.Temperature < 0 || c.Ranker.Temperature > 2 {
		return fmt.Errorf("invalid ranker temperature: %v", c.Ranker.Temperature)
	}
	if c.Ranker.CacheTTL < 0 {
		return fmt.Errorf("ranker cache ttl cannot be negative, got %s", c.Ranker.CacheTTL)
	}

	if c.Scoring.DistanceProfile != "wide" && c.Scoring.DistanceProfile != "narrow" {
		return fmt.Errorf("invalid distance profile: %s", c.Scoring.DistanceProfile)
	}

	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch workers must be at least 1")
	}
	if c.Batch.MaxRequests < 1 {
		return fmt.Errorf("batch max requests must be at least 1")
	}

	return nil
}

func (c *Config) validateLogging() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateHazards() error {
	if c.Hazards.PollInterval < time.Minute {
		return fmt.Errorf("hazard poll interval must be at least 1 minute")
	}
	if c.Hazards.NearbyRadiusKm <= 0 {
		return fmt.Errorf("nearby radius must be positive, got %v", c.Hazards.NearbyRadiusKm)
	}
	if c.Hazards.NWSEnabled && c.Hazards.NWSUserAgent == "" {
		return fmt.Errorf("NWS_USER_AGENT is required when NWS_ENABLED=true")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API       APIConfig
	Session   SessionConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Images    ImageConfig
	Log       LogConfig
}

type APIConfig struct {
	BaseURL     string
	Timeout     time.Duration
	PublicPaths []string
	UserAgent   string
}

type SessionConfig struct {
	// Backend is one of "file", "redis" or "memory".
	Backend string
	File    string
	TTL     time.Duration
	// KeyPrefix namespaces the redis keys so several profiles can share a server.
	KeyPrefix string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CacheConfig struct {
	L1Capacity int
	L1TTL      time.Duration
	L2TTL      time.Duration
	// UseRedis enables redis as the second cache tier.
	UseRedis bool
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type ImageConfig struct {
	BaseURL     string
	Placeholder string
}

type LogConfig struct {
	Level string
	File  string
}

// Load reads settings from the environment, then the optional YAML profile,
// then the built-in defaults, in that order of precedence.
func Load() (*Config, error) {
	// Load .env if it exists (local dev), ignore if not
	_ = godotenv.Load()

	values, err := loadFile(File())
	if err != nil {
		return nil, err
	}
	src := source(values)

	cfg := &Config{
		API: APIConfig{
			BaseURL:     src.get("API_BASE_URL", "http://localhost:8080"),
			Timeout:     src.getDuration("API_TIMEOUT", 10*time.Second),
			PublicPaths: []string{"/auth/login", "/auth/register"},
			UserAgent:   src.get("API_USER_AGENT", ""),
		},
		Session: SessionConfig{
			Backend:   src.get("SESSION_BACKEND", "file"),
			File:      src.get("SESSION_FILE", defaultSessionFile()),
			TTL:       src.getDuration("SESSION_TTL", 7*24*time.Hour),
			KeyPrefix: src.get("SESSION_KEY_PREFIX", "cinerate:session:default"),
		},
		Redis: RedisConfig{
			Addr:     src.get("REDIS_ADDR", "localhost:6379"),
			Password: src.get("REDIS_PASSWORD", ""),
			DB:       src.getInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			L1Capacity: src.getInt("CACHE_L1_CAPACITY", 500),
			L1TTL:      src.getDuration("CACHE_L1_TTL", 10*time.Minute),
			L2TTL:      src.getDuration("CACHE_L2_TTL", time.Hour),
			UseRedis:   src.getBool("CACHE_USE_REDIS", false),
		},
		RateLimit: RateLimitConfig{
			Requests: src.getInt("RATE_LIMIT_REQUESTS", 20),
			Window:   src.getDuration("RATE_LIMIT_WINDOW", time.Second),
		},
		Images: ImageConfig{
			BaseURL:     src.get("IMAGE_BASE_URL", "https://image.tmdb.org/t/p"),
			Placeholder: src.get("IMAGE_PLACEHOLDER", "/placeholder-movie.jpg"),
		},
		Log: LogConfig{
			Level: src.get("LOG_LEVEL", "INFO"),
			File:  src.get("LOG_FILE", defaultLogFile()),
		},
	}

	return cfg, nil
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "cinerate")
}

func defaultSessionFile() string {
	return filepath.Join(configDir(), "session.json")
}

func defaultLogFile() string {
	return filepath.Join(configDir(), "cinerate.log")
}

// source resolves one setting: environment first, then the config file.
type source map[string]string

func (s source) lookup(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return s[key]
}

func (s source) get(key, defaultValue string) string {
	if value := s.lookup(key); value != "" {
		return value
	}
	return defaultValue
}

func (s source) getInt(key string, defaultValue int) int {
	if value := s.lookup(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func (s source) getBool(key string, defaultValue bool) bool {
	if value := s.lookup(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func (s source) getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := s.lookup(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env      string
	HTTPAddr string
	LogLevel string

	DatabaseDriver    string
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	UploadDir   string
	MaxFileSize int64

	GeminiAPIKey string
	GeminiModel  string

	RedisURL        string
	CORSOrigins     []string
	AuthRateLimit   int
	ApplyRateLimit  int
	RateLimitWindow time.Duration
	RequestTimeout  time.Duration
}

// Load reads configuration from the process environment, a .env file when
// present and, if CONFIG_FILE names one, a YAML file of KEY: value pairs.
// Real environment variables win over both files.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	src := source{file: map[string]string{}}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		file, err := readYAML(path)
		if err != nil {
			return nil, err
		}
		src.file = file
	}

	cfg := &Config{
		Env:               src.get("APP_ENV", "development"),
		HTTPAddr:          src.get("HTTP_ADDR", ":9002"),
		LogLevel:          src.get("LOG_LEVEL", "info"),
		DatabaseDriver:    strings.ToLower(src.get("DATABASE_DRIVER", "postgres")),
		DatabaseURL:       src.get("DATABASE_URL", ""),
		DBMaxOpenConns:    src.getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    src.getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetime: src.getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		JWTSecret:         src.get("JWT_SECRET", ""),
		TokenTTL:          src.getDuration("TOKEN_TTL", 7*24*time.Hour),
		UploadDir:         src.get("UPLOAD_DIR", "./public/uploads"),
		MaxFileSize:       int64(src.getInt("MAX_FILE_SIZE", 5*1024*1024)),
		GeminiAPIKey:      src.get("GEMINI_API_KEY", ""),
		GeminiModel:       src.get("GEMINI_MODEL", "gemini-2.5-flash"),
		RedisURL:          src.get("REDIS_URL", ""),
		CORSOrigins:       splitList(src.get("CORS_ORIGINS", "*")),
		AuthRateLimit:     src.getInt("RATE_LIMIT_AUTH", 10),
		ApplyRateLimit:    src.getInt("RATE_LIMIT_APPLY", 5),
		RateLimitWindow:   src.getDuration("RATE_LIMIT_WINDOW", time.Minute),
		RequestTimeout:    src.getDuration("REQUEST_TIMEOUT", 15*time.Second),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.DatabaseDriver != "postgres" && c.DatabaseDriver != "sqlite" {
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite, got %q", c.DatabaseDriver))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.MaxFileSize <= 0 {
		errs = append(errs, errors.New("MAX_FILE_SIZE must be positive"))
	}
	return errors.Join(errs...)
}

type source struct {
	file map[string]string
}

func (s source) get(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value, ok := s.file[key]; ok && value != "" {
		return value
	}
	return fallback
}

func (s source) getInt(key string, fallback int) int {
	raw := s.get(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func (s source) getDuration(key string, fallback time.Duration) time.Duration {
	raw := s.get(key, "")
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readYAML(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		if value == nil {
			continue
		}
		out[strings.ToUpper(key)] = fmt.Sprint(value)
	}
	return out, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

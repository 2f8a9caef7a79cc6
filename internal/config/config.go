package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultEndpoint       = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultRetryPeriod    = 600 * time.Second
	DefaultRequestTimeout = 30 * time.Second
)

// ErrMissingTokens is matched by MissingTokensError.
var ErrMissingTokens = errors.New("missing required environment variables")

// MissingTokensError names every required secret that is absent.
type MissingTokensError struct {
	Names []string
}

func (e *MissingTokensError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingTokens, strings.Join(e.Names, ", "))
}

func (e *MissingTokensError) Is(target error) bool {
	return target == ErrMissingTokens
}

// Config holds application configuration loaded from environment.
type Config struct {
	Practicum struct {
		Token    string
		Endpoint string
	}
	Telegram struct {
		Token  string
		ChatID string
	}
	Poll struct {
		RetryPeriod    time.Duration
		RequestTimeout time.Duration
	}
	Logging struct {
		Dir   string
		Level string
	}
	Kafka struct {
		Broker string
		Topic  string
	}
	RateLimit struct {
		TelegramRateLimiter int
	}
}

// Load reads .env and environment variables, applies defaults, and returns a Config.
// Secrets are not validated here, see CheckTokens.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to load %s file: %w", f, err)
		}
	}

	var cfg Config

	// Secrets
	cfg.Practicum.Token = strings.TrimSpace(os.Getenv("PRACTICUM_TOKEN"))
	cfg.Telegram.Token = strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN"))
	cfg.Telegram.ChatID = strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID"))

	cfg.Practicum.Endpoint = os.Getenv("PRACTICUM_ENDPOINT")

	var err error
	if cfg.Poll.RetryPeriod, err = parseDuration("RETRY_PERIOD"); err != nil {
		return Config{}, err
	}
	if cfg.Poll.RequestTimeout, err = parseDuration("REQUEST_TIMEOUT"); err != nil {
		return Config{}, err
	}

	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")

	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")

	if v := os.Getenv("TELEGRAM_RATE_LIMIT"); v != "" {
		rl, err := strconv.Atoi(v)
		if err != nil || rl <= 0 {
			return Config{}, fmt.Errorf("invalid TELEGRAM_RATE_LIMIT %q", v)
		}
		cfg.RateLimit.TelegramRateLimiter = rl
	}

	// Apply defaults
	if cfg.Practicum.Endpoint == "" {
		cfg.Practicum.Endpoint = DefaultEndpoint
	}
	if cfg.Poll.RetryPeriod == 0 {
		cfg.Poll.RetryPeriod = DefaultRetryPeriod
	}
	if cfg.Poll.RequestTimeout == 0 {
		cfg.Poll.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "logs"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "debug"
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "homework_statuses"
	}
	if cfg.RateLimit.TelegramRateLimiter == 0 {
		cfg.RateLimit.TelegramRateLimiter = 1
	}

	return cfg, nil
}

// CheckTokens reports every missing secret at once.
func (c Config) CheckTokens() error {
	missing := []string{}
	if c.Practicum.Token == "" {
		missing = append(missing, "PRACTICUM_TOKEN")
	}
	if c.Telegram.Token == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	if c.Telegram.ChatID == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return &MissingTokensError{Names: missing}
	}
	return nil
}

// parseDuration accepts a Go duration ("10m") or a plain number of seconds ("600").
func parseDuration(key string) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}
	return d, nil
}

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/application/usecases/commands"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"

	"github.com/joho/godotenv"
)

const (
	NotifierHTTP  = "http"
	NotifierKafka = "kafka"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	PaymentServiceURL    string
	PaymentTimeout       time.Duration
	ProductionServiceURL string
	ProductionTimeout    time.Duration

	// ProductionNotifier selects the transport for production notifications: http or kafka.
	ProductionNotifier   string
	KafkaBrokers         []string
	KafkaProductionTopic string

	NotificationBatchSize        int
	NotificationMaxAttempts      int
	NotificationRetryDelay       time.Duration
	NotificationDispatchSchedule string

	// OrderTransitionsFile points to a YAML transition table. Empty keeps every
	// transition allowed; "kitchen" selects the built-in forward-only workflow.
	OrderTransitionsFile string

	LogLevel     string
	OTLPEndpoint string
}

// LoadConfig reads the environment, after loading .env when one exists.
// Variables already set in the environment win over .env.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var parseErrs []error
	duration := func(key string, fallback time.Duration) time.Duration {
		d, err := envDuration(key, fallback)
		parseErrs = append(parseErrs, err)
		return d
	}
	integer := func(key string, fallback int) int {
		n, err := envInt(key, fallback)
		parseErrs = append(parseErrs, err)
		return n
	}

	config := Config{
		HTTPPort:   env("HTTP_PORT", "8080"),
		DBHost:     env("DB_HOST", "localhost"),
		DBPort:     env("DB_PORT", "5432"),
		DBUser:     env("DB_USER", "postgres"),
		DBPassword: env("DB_PASSWORD", "postgres"),
		DBName:     env("DB_NAME", "orders"),
		DBSslMode:  env("DB_SSLMODE", "disable"),

		PaymentServiceURL:    env("PAYMENT_SERVICE_URL", "http://localhost:3001"),
		PaymentTimeout:       duration("PAYMENT_TIMEOUT", 5*time.Second),
		ProductionServiceURL: env("PRODUCTION_SERVICE_URL", "http://localhost:3002"),
		ProductionTimeout:    duration("PRODUCTION_TIMEOUT", 3*time.Second),

		ProductionNotifier:   strings.ToLower(env("PRODUCTION_NOTIFIER", NotifierHTTP)),
		KafkaBrokers:         splitList(env("KAFKA_BROKERS", "localhost:9092")),
		KafkaProductionTopic: env("KAFKA_PRODUCTION_TOPIC", "orders.production"),

		NotificationBatchSize:        integer("NOTIFICATION_BATCH_SIZE", 50),
		NotificationMaxAttempts:      integer("NOTIFICATION_MAX_ATTEMPTS", 5),
		NotificationRetryDelay:       duration("NOTIFICATION_RETRY_DELAY", 30*time.Second),
		NotificationDispatchSchedule: env("NOTIFICATION_DISPATCH_SCHEDULE", "*/10 * * * * *"),

		OrderTransitionsFile: os.Getenv("ORDER_TRANSITIONS_FILE"),

		LogLevel:     env("LOG_LEVEL", "info"),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if err := errors.Join(parseErrs...); err != nil {
		return Config{}, err
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	switch c.ProductionNotifier {
	case NotifierHTTP:
		if c.ProductionServiceURL == "" {
			return errs.NewValueIsRequiredError("PRODUCTION_SERVICE_URL")
		}
	case NotifierKafka:
		if len(c.KafkaBrokers) == 0 {
			return errs.NewValueIsRequiredError("KAFKA_BROKERS")
		}
		if c.KafkaProductionTopic == "" {
			return errs.NewValueIsRequiredError("KAFKA_PRODUCTION_TOPIC")
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause("PRODUCTION_NOTIFIER",
			fmt.Errorf("%q is neither %s nor %s", c.ProductionNotifier, NotifierHTTP, NotifierKafka))
	}

	if c.PaymentServiceURL == "" {
		return errs.NewValueIsRequiredError("PAYMENT_SERVICE_URL")
	}
	if c.PaymentTimeout <= 0 {
		return errs.NewValueIsOutOfRangeError("PAYMENT_TIMEOUT", c.PaymentTimeout, "1ns", "unbounded")
	}
	if c.NotificationBatchSize <= 0 {
		return errs.NewValueIsOutOfRangeError("NOTIFICATION_BATCH_SIZE", c.NotificationBatchSize, 1, "unbounded")
	}
	return c.DeliveryPolicy().Validate()
}

func (c Config) DeliveryPolicy() commands.DeliveryPolicy {
	return commands.DeliveryPolicy{
		Timeout:     c.ProductionTimeout,
		RetryDelay:  c.NotificationRetryDelay,
		MaxAttempts: c.NotificationMaxAttempts,
	}
}

// DatabaseURL is the postgres:// form used by lib/pq and golang-migrate.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSslMode}}.Encode(),
	}
	return u.String()
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := env(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return d, nil
}

func envInt(key string, fallback int) (int, error) {
	raw := env(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	WebhookModeSync  = "sync"
	WebhookModeKafka = "kafka"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"3000"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	SquareBaseURL     string `env:"SQUARE_BASE_URL" envDefault:"https://connect.squareupsandbox.com"`
	SquareAppID       string `env:"SQUARE_APP_ID,notEmpty"`
	SquareAppSecret   string `env:"SQUARE_APP_SECRET,notEmpty"`
	SquareAccessToken string `env:"SQUARE_ACCESS_TOKEN,notEmpty"`
	SquareOAuthScope  string `env:"SQUARE_OAUTH_SCOPE" envDefault:"ORDERS_READ CUSTOMERS_READ"`

	// Custom objects and associations live on the LeadConnector API,
	// contacts on the legacy REST API with its own key.
	GHLBaseURL       string `env:"GHL_BASE_URL" envDefault:"https://services.leadconnectorhq.com"`
	GHLRestBaseURL   string `env:"GHL_REST_BASE_URL" envDefault:"https://rest.gohighlevel.com"`
	GHLToken         string `env:"GHL_TOKEN,notEmpty"`
	GHLAPIKey        string `env:"GHL_API_KEY,notEmpty"`
	GHLAPIVersion    string `env:"GHL_API_VERSION" envDefault:"2021-07-28"`
	GHLLocationID    string `env:"GHL_LOCATION_ID" envDefault:"cNNmo49VBOSV6P5SU1No"`
	GHLAssociationID string `env:"GHL_ASSOCIATION_ID" envDefault:"690262bd0652912d48350a54"`
	GHLContactTag    string `env:"GHL_CONTACT_TAG" envDefault:"Squad Customers"`

	// Zero keeps the transport defaults.
	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"0s"`

	// Webhook processing mode: "sync" (inline) or "kafka" (publish, then consume)
	WebhookMode string `env:"WEBHOOK_MODE" envDefault:"sync"`

	KafkaBrokers       []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaOrdersTopic   string   `env:"KAFKA_ORDERS_TOPIC" envDefault:"square.orders"`
	KafkaOrdersGroup   string   `env:"KAFKA_ORDERS_CONSUMER_GROUP" envDefault:"square-bridge-orders"`
	KafkaOrdersDLQ     string   `env:"KAFKA_ORDERS_DLQ_TOPIC" envDefault:"square.orders.dlq"`
	KafkaRetryAttempts int      `env:"KAFKA_RETRY_ATTEMPTS" envDefault:"3"`

	// Optional webhook event journal.
	PgURL     string `env:"PG_URL"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`

	// Optional synced-order search index.
	OpensearchUrls        []string `env:"OPENSEARCH_URLS" envSeparator:","`
	OpensearchIndexOrders string   `env:"OPENSEARCH_INDEX_ORDERS" envDefault:"synced-orders"`
}

// New loads an optional .env file and parses the environment.
func New() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c Config) Validate() error {
	switch c.WebhookMode {
	case WebhookModeSync:
	case WebhookModeKafka:
		if len(c.KafkaBrokers) == 0 {
			return errors.New("KAFKA_BROKERS is required when WEBHOOK_MODE=kafka")
		}
	default:
		return fmt.Errorf("unsupported webhook mode: %q", c.WebhookMode)
	}
	return nil
}

func (c Config) JournalEnabled() bool {
	return c.PgURL != ""
}

func (c Config) IndexEnabled() bool {
	return len(c.OpensearchUrls) > 0
}

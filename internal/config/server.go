package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	HTTPAddr        string `env:"HTTP_ADDR" envDefault:":8080"`
	TableCapacities []int  `env:"TABLE_CAPACITIES" envDefault:"2,2,4,4,6" envSeparator:","`
	MaxPartySize    int    `env:"MAX_PARTY_SIZE" envDefault:"0"`

	AdminAPIKey string `env:"ADMIN_API_KEY"`
	MCPEnabled  bool   `env:"MCP_ENABLED" envDefault:"true"`

	PostgresDSN string `env:"POSTGRES_DSN"`

	AMQPURL   string `env:"AMQP_URL"`
	AMQPQueue string `env:"AMQP_QUEUE" envDefault:"seating.events"`

	EventWebhookURL    string `env:"EVENT_WEBHOOK_URL"`
	EventWebhookSecret string `env:"EVENT_WEBHOOK_SECRET"`

	EventBufferSize int `env:"EVENT_BUFFER_SIZE" envDefault:"500"`
	PushWorkers     int `env:"PUSH_WORKERS" envDefault:"2"`
	PushRetryMax    int `env:"PUSH_RETRY_MAX" envDefault:"3"`
	PushRetryBaseMS int `env:"PUSH_RETRY_BASE_MS" envDefault:"500"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c ServerConfig) Validate() error {
	if len(c.TableCapacities) == 0 {
		return fmt.Errorf("TABLE_CAPACITIES must list at least one table")
	}
	for _, capacity := range c.TableCapacities {
		if capacity < 1 {
			return fmt.Errorf("TABLE_CAPACITIES: capacity %d must be positive", capacity)
		}
	}
	if c.MaxPartySize < 0 {
		return fmt.Errorf("MAX_PARTY_SIZE must not be negative")
	}
	return nil
}

// PushEnabled reports whether any asynchronous event sink is configured.
func (c ServerConfig) PushEnabled() bool {
	return c.PostgresDSN != "" || c.AMQPURL != "" || c.EventWebhookURL != ""
}

package app

import (
	"fmt"
	"time"

	"github.com/SGK112/CRM-sub005/internal/crm/domain"
	"github.com/caarlos0/env/v11"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Issuer         string `env:"CRM_ISSUER"          envDefault:"crm-api"`
	DatabaseDriver string `env:"CRM_DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseFile   string `env:"CRM_DATABASE_FILE"   envDefault:"crm.db"`
	DatabaseURL    string `env:"CRM_DATABASE_URL"`

	RedisURL          string `env:"CRM_REDIS_URL"`          // Optional: shares the workspace lock between replicas
	ProvisioningToken string `env:"CRM_PROVISIONING_TOKEN"` // Optional: enables POST /workspaces

	PlanSeats      domain.PlanTable `env:"CRM_PLAN_SEATS"           envDefault:"free:2,starter:5,growth:15,enterprise:100"`
	InvitationTTL  time.Duration    `env:"CRM_INVITATION_TTL"       envDefault:"168h"`
	Retention      time.Duration    `env:"CRM_INVITATION_RETENTION" envDefault:"720h"`
	AccessTokenTTL time.Duration    `env:"CRM_ACCESS_TOKEN_TTL"     envDefault:"1h"`
	NumKeys        int              `env:"CRM_NUM_KEYS"             envDefault:"2"`
	LockTTL        time.Duration    `env:"CRM_LOCK_TTL"             envDefault:"10s"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	Env                  string        `env:"ENV"                   envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                 int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

// LoadConfig reads the environment. Unknown drivers and a postgres driver
// without a DSN are rejected here rather than at first query.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.DatabaseDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("CRM_DATABASE_URL is required with the %s driver", DriverPostgres)
		}
	default:
		return Config{}, fmt.Errorf("unknown CRM_DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	return cfg, nil
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "steakaway"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	Cart    CartConfig
	Redis   RedisConfig
	JWT     JWTConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STEAKAWAY_APP_ENV" default:"dev"`
	Port         string `envconfig:"STEAKAWAY_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STEAKAWAY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STEAKAWAY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	// Path overrides the embedded menu when set.
	Path string `envconfig:"STEAKAWAY_CATALOG_PATH"`
}

type CartConfig struct {
	TaxRate decimal.Decimal `envconfig:"STEAKAWAY_CART_TAX_RATE" default:"0.16"`
	// DuplicatePolicy controls what an add with a colliding fingerprint does:
	// "merge" sums quantities into the existing line, "append" keeps distinct lines.
	DuplicatePolicy string `envconfig:"STEAKAWAY_CART_DUPLICATE_POLICY" default:"merge"`
}

func (c CartConfig) validate() error {
	if c.TaxRate.IsNegative() {
		return fmt.Errorf("cart tax rate must be non-negative, got %s", c.TaxRate)
	}
	switch strings.ToLower(strings.TrimSpace(c.DuplicatePolicy)) {
	case "merge", "append":
		return nil
	}
	return fmt.Errorf("cart duplicate policy must be merge or append, got %q", c.DuplicatePolicy)
}

// MergesDuplicates reports whether colliding adds fold into one line.
func (c CartConfig) MergesDuplicates() bool {
	return !strings.EqualFold(strings.TrimSpace(c.DuplicatePolicy), "append")
}

type RedisConfig struct {
	URL          string        `envconfig:"STEAKAWAY_REDIS_URL"`
	Address      string        `envconfig:"STEAKAWAY_REDIS_ADDR"`
	Password     string        `envconfig:"STEAKAWAY_REDIS_PASSWORD"`
	DB           int           `envconfig:"STEAKAWAY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STEAKAWAY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STEAKAWAY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STEAKAWAY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STEAKAWAY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STEAKAWAY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether any redis endpoint was provided.
func (r RedisConfig) Configured() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"STEAKAWAY_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"STEAKAWAY_JWT_ISSUER" default:"steakaway"`
	ExpirationMinutes int    `envconfig:"STEAKAWAY_JWT_EXPIRATION_MINUTES" default:"720"`
}

// TokenTTL returns the session token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

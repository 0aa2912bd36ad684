package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/currency"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	AppEnv          string        `env:"APP_ENV" envDefault:"dev"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Storage         string        `env:"STORAGE" envDefault:"postgres"`
	StoreCurrency   string        `env:"STORE_CURRENCY" envDefault:"USD"`

	Postgres Postgres `envPrefix:"POSTGRES_"`
	Auth     Auth     `envPrefix:"AUTH_"`
}

type Auth struct {
	TokenSecret string        `env:"TOKEN_SECRET,required,notEmpty"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"30m"`
	BcryptCost  int           `env:"BCRYPT_COST" envDefault:"10"`

	// Bootstrap admin, created at startup when absent.
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("env.ParseAs: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("cfg.Validate: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.Storage != StoragePostgres && c.Storage != StorageMemory {
		errs = append(errs, fmt.Errorf("STORAGE[%s] must be %q or %q", c.Storage, StoragePostgres, StorageMemory))
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT[%d] is out of range", c.HTTPPort))
	}
	if _, err := currency.ParseISO(c.StoreCurrency); err != nil {
		errs = append(errs, fmt.Errorf("STORE_CURRENCY[%s] is not valid: %w", c.StoreCurrency, err))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("AUTH_TOKEN_TTL[%s] must be positive", c.Auth.TokenTTL))
	}

	admin := []string{c.Auth.AdminUsername, c.Auth.AdminEmail, c.Auth.AdminPassword}
	set := 0
	for _, v := range admin {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(admin) {
		errs = append(errs, errors.New("AUTH_ADMIN_USERNAME, AUTH_ADMIN_EMAIL and AUTH_ADMIN_PASSWORD must be set together"))
	}

	return errors.Join(errs...)
}

// Currency returns the parsed store currency. It panics on an unvalidated config.
func (c Config) Currency() currency.Unit {
	return currency.MustParseISO(c.StoreCurrency)
}

func (c Config) HasAdmin() bool {
	return c.Auth.AdminUsername != ""
}

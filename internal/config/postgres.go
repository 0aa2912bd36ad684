package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Postgres struct {
	// DSN takes precedence over the individual connection fields.
	DSN      string `env:"DSN"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"shop"`
	Password string `env:"PASSWORD" envDefault:"shop"`
	DB       string `env:"DB" envDefault:"shop"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`

	MaxConns int  `env:"MAX_CONNS" envDefault:"8"`
	MinConns int  `env:"MIN_CONNS" envDefault:"2"`
	Migrate  bool `env:"MIGRATE" envDefault:"true"`
}

func (p Postgres) ConnString() string {
	if p.DSN != "" {
		return p.DSN
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.DB,
		RawQuery: url.Values{"sslmode": []string{p.SSLMode}}.Encode(),
	}

	return u.String()
}

// PoolConfig builds a pgxpool.Config with the configured pool limits.
func (p Postgres) PoolConfig() (*pgxpool.Config, error) {
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5
	const defaultHealthCheckPeriod = time.Minute
	const defaultConnectTimeout = time.Second * 5

	dbConfig, err := pgxpool.ParseConfig(p.ConnString())
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}

	if p.MaxConns > 0 {
		dbConfig.MaxConns = int32(p.MaxConns)
	}
	if p.MinConns > 0 && p.MinConns <= p.MaxConns {
		dbConfig.MinConns = int32(p.MinConns)
	}
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig, nil
}

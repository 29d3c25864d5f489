package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/good-enough-software/team-builder/internal/entities"
)

// Repository backends understood by repository.New.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Repository RepositoryConfig `mapstructure:"repository"`
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	SQLite     SQLiteConfig     `mapstructure:"sqlite"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Balancer   BalancerConfig   `mapstructure:"balancer"`
	Share      ShareConfig      `mapstructure:"share"`
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.Server.Port == 0 {
		return errors.New("server.port is required")
	}
	switch c.Repository.Backend {
	case BackendPostgres:
		if c.Postgres.User == "" || c.Postgres.Password == "" || c.Postgres.DBName == "" {
			return errors.New("postgres credentials are required")
		}
		if c.Postgres.Host == "" {
			return errors.New("postgres.host is required")
		}
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return errors.New("sqlite.path is required")
		}
	default:
		return fmt.Errorf("unknown repository.backend %q", c.Repository.Backend)
	}
	if err := c.Balancer.Validate(); err != nil {
		return err
	}
	if c.Share.BaseURL == "" {
		return errors.New("share.base_url is required")
	}
	return nil
}

// ServerAddr returns host:port for HTTP server binding.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ServerConfig contains HTTP server options.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// HTTPConfig contains transport settings.
type HTTPConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LoggingConfig contains logger preferences.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// RepositoryConfig selects the persistence backend.
type RepositoryConfig struct {
	Backend string `mapstructure:"backend"`
}

// PostgresConfig describes database connection parameters.
type PostgresConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	DBName         string        `mapstructure:"db_name"`
	SSLMode        string        `mapstructure:"ssl_mode"`
	MigrationsDir  string        `mapstructure:"migrations_dir"`
	MigrateTimeout time.Duration `mapstructure:"migrate_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
	MaxConns       int32         `mapstructure:"max_conns"`
	MinConns       int32         `mapstructure:"min_conns"`
}

// DSN returns a Postgres connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

// SQLiteConfig describes the embedded database file. ":memory:" keeps state in process.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// BalancerConfig sizes the roster, the grouping and the search budget.
type BalancerConfig struct {
	RequiredSize        int `mapstructure:"required_size"`
	GroupCount          int `mapstructure:"group_count"`
	MaxAttempts         int `mapstructure:"max_attempts"`
	DefaultMaxImbalance int `mapstructure:"default_max_imbalance"`
}

// Validate checks that the roster divides evenly into groups.
func (b BalancerConfig) Validate() error {
	if b.RequiredSize <= 0 || b.GroupCount <= 0 {
		return errors.New("balancer.required_size and balancer.group_count must be positive")
	}
	if b.RequiredSize%b.GroupCount != 0 {
		return fmt.Errorf("balancer.required_size %d is not divisible by balancer.group_count %d", b.RequiredSize, b.GroupCount)
	}
	if b.MaxAttempts <= 0 {
		return errors.New("balancer.max_attempts must be positive")
	}
	if b.DefaultMaxImbalance < 0 || b.DefaultMaxImbalance > entities.MaxImbalanceLimit {
		return fmt.Errorf("balancer.default_max_imbalance must be within [0, %d]", entities.MaxImbalanceLimit)
	}
	return nil
}

// ShareConfig contains view link settings.
type ShareConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	ShortenerURL     string        `mapstructure:"shortener_url"`
	ShortenerTimeout time.Duration `mapstructure:"shortener_timeout"`
}

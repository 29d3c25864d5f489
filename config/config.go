// Package config loads application configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = "config/.env"

// NewConfig builds the configuration from defaults, config/.env and the process environment,
// in increasing priority, and validates it.
func NewConfig() (*Config, error) {
	// a missing file is fine; variables already set are never overridden
	_ = godotenv.Load(envFile)

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// defaults holds every known key; env binding is derived from it.
var defaults = map[string]any{
	"logging.level": "debug",

	"server.host":             "0.0.0.0",
	"server.port":             8080,
	"server.shutdown_timeout": 5 * time.Second,
	"http.request_timeout":    3 * time.Second,

	"repository.backend": BackendPostgres,

	"postgres.host":            "localhost",
	"postgres.port":            5432,
	"postgres.user":            "postgres",
	"postgres.password":        "postgres",
	"postgres.db_name":         "team_builder_db",
	"postgres.ssl_mode":        "disable",
	"postgres.migrations_dir":  "db/migrations",
	"postgres.migrate_timeout": 10 * time.Second,
	"postgres.query_timeout":   2 * time.Second,
	"postgres.max_conns":       10,
	"postgres.min_conns":       2,

	"sqlite.path": "team_builder.db",

	"balancer.required_size":         15,
	"balancer.group_count":           3,
	"balancer.max_attempts":          1000,
	"balancer.default_max_imbalance": 50,

	"share.base_url":          "https://good-enough-software.github.io/team-builder",
	"share.shortener_url":     "https://tinyurl.com/api-create.php",
	"share.shortener_timeout": 3 * time.Second,
}

func setDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// bindEnvs maps each key to its env name, e.g. balancer.max_attempts to BALANCER_MAX_ATTEMPTS.
func bindEnvs(v *viper.Viper) {
	for key := range defaults {
		_ = v.BindEnv(key)
	}
}

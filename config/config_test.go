package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	require.Equal(t, BackendPostgres, cfg.Repository.Backend)
	require.Equal(t, 15, cfg.Balancer.RequiredSize)
	require.Equal(t, 3, cfg.Balancer.GroupCount)
	require.Equal(t, 1000, cfg.Balancer.MaxAttempts)
	require.Equal(t, 50, cfg.Balancer.DefaultMaxImbalance)
	require.Equal(t, 3*time.Second, cfg.HTTP.RequestTimeout)
	require.Equal(t, "0.0.0.0:8080", cfg.ServerAddr())
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("REPOSITORY_BACKEND", BackendSQLite)
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("BALANCER_REQUIRED_SIZE", "12")
	t.Setenv("BALANCER_GROUP_COUNT", "4")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, BackendSQLite, cfg.Repository.Backend)
	require.Equal(t, ":memory:", cfg.SQLite.Path)
	require.Equal(t, 12, cfg.Balancer.RequiredSize)
	require.Equal(t, 4, cfg.Balancer.GroupCount)
	require.Equal(t, 9090, cfg.Server.Port)
}

func TestNewConfigRejectsUnevenGroups(t *testing.T) {
	t.Setenv("BALANCER_REQUIRED_SIZE", "14")

	_, err := NewConfig()
	require.ErrorContains(t, err, "not divisible")
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := Config{
		Server:     ServerConfig{Port: 8080},
		Repository: RepositoryConfig{Backend: "redis"},
	}
	require.ErrorContains(t, cfg.Validate(), "unknown repository.backend")
}

func TestBalancerConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     BalancerConfig
		wantErr bool
	}{
		{name: "default", cfg: BalancerConfig{RequiredSize: 15, GroupCount: 3, MaxAttempts: 1000, DefaultMaxImbalance: 50}},
		{name: "zero groups", cfg: BalancerConfig{RequiredSize: 15, MaxAttempts: 1}, wantErr: true},
		{name: "no attempts", cfg: BalancerConfig{RequiredSize: 15, GroupCount: 3}, wantErr: true},
		{name: "threshold too high", cfg: BalancerConfig{RequiredSize: 15, GroupCount: 3, MaxAttempts: 1, DefaultMaxImbalance: 201}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

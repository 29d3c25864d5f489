// Package repository provides factory for repositories.
package repository

import (
	"fmt"

	"github.com/good-enough-software/team-builder/config"
	"github.com/good-enough-software/team-builder/internal/repository/postgres"
	"github.com/good-enough-software/team-builder/internal/repository/sqlite"

	"go.uber.org/zap"
)

// Repository aggregates all persistence interfaces.
type Repository interface {
	LifecycleInterface
	SessionInterface
}

// New constructs repository backend by name.
func New(name string, log *zap.SugaredLogger, cfg *config.Config) (Repository, error) {
	switch name {
	case config.BackendPostgres:
		return postgres.New(log, cfg), nil
	case config.BackendSQLite:
		return sqlite.New(log, cfg), nil
	default:
		return nil, fmt.Errorf("unknown repo backend: %s", name)
	}
}

// Package postgres implements the repository against PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/good-enough-software/team-builder/config"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Postgres keeps session state in a pgx pool.
type Postgres struct {
	log *zap.SugaredLogger
	db  *pgxpool.Pool
	cfg config.PostgresConfig
}

// New creates a Postgres repository. No connection is made before OnStart.
func New(log *zap.SugaredLogger, cfg *config.Config) *Postgres {
	return &Postgres{
		log: log.Named("repo.postgres"),
		cfg: cfg.Postgres,
	}
}

// OnStart migrates the schema, then opens and checks the pool.
func (p *Postgres) OnStart(ctx context.Context) error {
	if err := p.migrate(ctx); err != nil {
		return err
	}

	poolCfg, err := pgxpool.ParseConfig(p.cfg.DSN())
	if err != nil {
		return fmt.Errorf("parse pool config: %w", err)
	}
	poolCfg.MaxConns = p.cfg.MaxConns
	poolCfg.MinConns = p.cfg.MinConns

	dialCtx, cancel := context.WithTimeout(ctx, p.cfg.QueryTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(dialCtx, poolCfg)
	if err != nil {
		return fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(dialCtx); err != nil {
		pool.Close()
		return fmt.Errorf("ping pool: %w", err)
	}

	p.db = pool
	p.log.Infow("postgres ready", "host", p.cfg.Host, "db", p.cfg.DBName, "max_conns", p.cfg.MaxConns)
	return nil
}

// migrate runs goose over database/sql; pgxpool does not expose a *sql.DB.
func (p *Postgres) migrate(ctx context.Context) error {
	sqlDB, err := sql.Open("postgres", p.cfg.DSN())
	if err != nil {
		return fmt.Errorf("open sql: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, os.DirFS(p.cfg.MigrationsDir))
	if err != nil {
		return fmt.Errorf("migration provider: %w", err)
	}

	migrateCtx, cancel := context.WithTimeout(ctx, p.cfg.MigrateTimeout)
	defer cancel()

	results, err := provider.Up(migrateCtx)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	version, err := provider.GetDBVersion(migrateCtx)
	if err != nil {
		return fmt.Errorf("migrate version: %w", err)
	}
	p.log.Debugw("migrations applied", "applied", len(results), "version", version, "dir", p.cfg.MigrationsDir)
	return nil
}

// OnStop closes the pool.
func (p *Postgres) OnStop(_ context.Context) error {
	if p.db == nil {
		return nil
	}
	p.db.Close()
	p.db = nil
	p.log.Infow("postgres closed")
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/good-enough-software/team-builder/internal/entities"
	"github.com/good-enough-software/team-builder/internal/repository/state"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

const (
	insertSessionQuery = `INSERT INTO sessions(id) VALUES ($1) RETURNING created_at, updated_at`
	selectSessionQuery = `SELECT created_at, updated_at FROM sessions WHERE id=$1`
	touchSessionQuery  = `UPDATE sessions SET updated_at=NOW() WHERE id=$1 RETURNING created_at, updated_at`
	deleteSessionQuery = `DELETE FROM sessions WHERE id=$1`
	selectStateQuery   = `SELECT key, value::text FROM session_state WHERE session_id=$1`
	upsertStateQuery   = `
INSERT INTO session_state(session_id, key, value)
VALUES ($1, $2, $3::jsonb)
ON CONFLICT (session_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
`
)

// CreateSession inserts an empty session.
func (p *Postgres) CreateSession(ctx context.Context, id string) (*entities.Session, error) {
	s := entities.Session{ID: id, Players: []entities.Player{}, Teams: []entities.Team{}}
	if err := p.db.QueryRow(ctx, insertSessionQuery, id).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: session %s exists", entities.ErrInvalidArgument, id)
		}
		return nil, fmt.Errorf("insert session: %w", err)
	}

	p.log.Infow("session created", "session_id", id)
	return &s, nil
}

// GetSession loads a session with its roster and grouping.
func (p *Postgres) GetSession(ctx context.Context, id string) (*entities.Session, error) {
	s := entities.Session{ID: id}
	if err := p.db.QueryRow(ctx, selectSessionQuery, id).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	rows, err := p.db.Query(ctx, selectStateQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get session state: %w", err)
	}
	defer rows.Close()

	values := make(map[string][]byte, len(state.Keys))
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan session state: %w", err)
		}
		values[key] = []byte(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session state: %w", err)
	}

	if err := state.Decode(&s, values); err != nil {
		p.log.Errorw("failed to decode session state", "error", err, "session_id", id)
		return nil, err
	}
	return &s, nil
}

// SaveSession replaces the stored roster and grouping in one transaction.
func (p *Postgres) SaveSession(ctx context.Context, session entities.Session) (*entities.Session, error) {
	values, err := state.Encode(session)
	if err != nil {
		return nil, err
	}

	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	saved := session
	if err := tx.QueryRow(ctx, touchSessionQuery, session.ID).Scan(&saved.CreatedAt, &saved.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrSessionNotFound
		}
		return nil, fmt.Errorf("touch session: %w", err)
	}

	for _, key := range state.Keys {
		if _, err := tx.Exec(ctx, upsertStateQuery, session.ID, key, string(values[key])); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
				return nil, entities.ErrSessionNotFound
			}
			return nil, fmt.Errorf("upsert %s: %w", key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Debugw("session saved", "session_id", session.ID, "players", len(session.Players), "teams", len(session.Teams))
	return &saved, nil
}

// DeleteSession removes a session and its state.
func (p *Postgres) DeleteSession(ctx context.Context, id string) error {
	tag, err := p.db.Exec(ctx, deleteSessionQuery, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrSessionNotFound
	}

	p.log.Infow("session deleted", "session_id", id)
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/good-enough-software/team-builder/internal/entities"
	"github.com/good-enough-software/team-builder/internal/repository/state"
)

const (
	insertSessionQuery = `INSERT INTO sessions(id, created_at, updated_at) VALUES (?, ?, ?) ON CONFLICT (id) DO NOTHING`
	selectSessionQuery = `SELECT created_at, updated_at FROM sessions WHERE id = ?`
	touchSessionQuery  = `UPDATE sessions SET updated_at = ? WHERE id = ?`
	deleteSessionQuery = `DELETE FROM sessions WHERE id = ?`
	selectStateQuery   = `SELECT key, value FROM session_state WHERE session_id = ?`
	upsertStateQuery   = `
INSERT INTO session_state(session_id, key, value, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (session_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`
)

// CreateSession inserts an empty session.
func (s *SQLite) CreateSession(ctx context.Context, id string) (*entities.Session, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, insertSessionQuery, id, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: session %s exists", entities.ErrInvalidArgument, id)
	}

	s.log.Infow("session created", "session_id", id)
	return &entities.Session{
		ID:        id,
		Players:   []entities.Player{},
		Teams:     []entities.Team{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetSession loads a session with its roster and grouping.
func (s *SQLite) GetSession(ctx context.Context, id string) (*entities.Session, error) {
	sess := entities.Session{ID: id}
	if err := s.db.QueryRowContext(ctx, selectSessionQuery, id).Scan(&sess.CreatedAt, &sess.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, selectStateQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get session state: %w", err)
	}
	defer func() { _ = rows.Close() }()

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

	if err := state.Decode(&sess, values); err != nil {
		s.log.Errorw("failed to decode session state", "error", err, "session_id", id)
		return nil, err
	}
	return &sess, nil
}

// SaveSession replaces the stored roster and grouping in one transaction.
func (s *SQLite) SaveSession(ctx context.Context, session entities.Session) (*entities.Session, error) {
	values, err := state.Encode(session)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, touchSessionQuery, now, session.ID)
	if err != nil {
		return nil, fmt.Errorf("touch session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, entities.ErrSessionNotFound
	}

	for _, key := range state.Keys {
		if _, err := tx.ExecContext(ctx, upsertStateQuery, session.ID, key, string(values[key]), now); err != nil {
			return nil, fmt.Errorf("upsert %s: %w", key, err)
		}
	}

	saved := session
	if err := tx.QueryRowContext(ctx, selectSessionQuery, session.ID).Scan(&saved.CreatedAt, &saved.UpdatedAt); err != nil {
		return nil, fmt.Errorf("reload session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.log.Debugw("session saved", "session_id", session.ID, "players", len(session.Players), "teams", len(session.Teams))
	return &saved, nil
}

// DeleteSession removes a session and its state.
func (s *SQLite) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, deleteSessionQuery, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entities.ErrSessionNotFound
	}

	s.log.Infow("session deleted", "session_id", id)
	return nil
}

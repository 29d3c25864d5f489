package domain

import (
	"context"
	"fmt"

	"github.com/good-enough-software/team-builder/internal/entities"
)

// CreateSession starts a session with an empty roster.
func (u *Usecase) CreateSession(ctx context.Context) (*entities.Session, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	s, err := u.repo.CreateSession(ctx, u.newID())
	if err != nil {
		u.log.Errorw("failed to create session", "error", err)
		return nil, err
	}
	return s, nil
}

// Session returns the roster and grouping of a session.
func (u *Usecase) Session(ctx context.Context, id string) (*entities.Session, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if id == "" {
		return nil, fmt.Errorf("%w: session_id is required", entities.ErrInvalidArgument)
	}
	return u.repo.GetSession(ctx, id)
}

// DeleteSession drops a session and its stored state.
func (u *Usecase) DeleteSession(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if id == "" {
		return fmt.Errorf("%w: session_id is required", entities.ErrInvalidArgument)
	}

	unlock := u.locks.lock(id)
	defer unlock()
	return u.repo.DeleteSession(ctx, id)
}

// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"github.com/good-enough-software/team-builder/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// SessionInterface exposes session state operations.
type SessionInterface interface {
	CreateSession(ctx context.Context, id string) (*entities.Session, error)
	GetSession(ctx context.Context, id string) (*entities.Session, error)
	SaveSession(ctx context.Context, session entities.Session) (*entities.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

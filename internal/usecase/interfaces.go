package usecase

import (
	"context"

	"github.com/good-enough-software/team-builder/internal/entities"
)

// SessionUsecaseInterface abstracts session lifecycle operations for delivery layer.
type SessionUsecaseInterface interface {
	CreateSession(ctx context.Context) (*entities.Session, error)
	Session(ctx context.Context, id string) (*entities.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// RosterUsecaseInterface abstracts roster editing operations.
type RosterUsecaseInterface interface {
	AddPlayer(ctx context.Context, id, name string) (*entities.Session, error)
	FillRoster(ctx context.Context, id string) (*entities.Session, error)
	UpdateSkill(ctx context.Context, id string, index, skill int) (*entities.Session, error)
	RemovePlayer(ctx context.Context, id string, index int) (*entities.Session, error)
	Reset(ctx context.Context, id string) (*entities.Session, error)
	RequiredSize() int
}

// BalanceUsecaseInterface abstracts team balancing.
type BalanceUsecaseInterface interface {
	Balance(ctx context.Context, id string, maxImbalance *int) (entities.BalanceResult, error)
}

// ShareUsecaseInterface abstracts view link operations.
type ShareUsecaseInterface interface {
	Share(ctx context.Context, id string, opts entities.ShareOptions) (entities.ShareLink, error)
	Import(ctx context.Context, id, link string) (*entities.Session, error)
	View(ctx context.Context, link string) (entities.SharePayload, error)
}

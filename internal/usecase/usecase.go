package usecase

import (
	"context"
	"time"

	"github.com/good-enough-software/team-builder/internal/repository"
	"github.com/good-enough-software/team-builder/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	SessionUsecaseInterface
	RosterUsecaseInterface
	BalanceUsecaseInterface
	ShareUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(log *zap.SugaredLogger, ctx context.Context, repo repository.Repository, timeout time.Duration, deps domain.Deps) InterfaceUsecase {
	return domain.New(log, ctx, repo, timeout, deps)
}

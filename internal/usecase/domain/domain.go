// Package domain contains application usecases orchestrating the roster, the balancer and view links.
package domain

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/good-enough-software/team-builder/internal/balancer"
	"github.com/good-enough-software/team-builder/internal/entities"
	"github.com/good-enough-software/team-builder/internal/repository"
	"github.com/good-enough-software/team-builder/internal/share"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Shortener shortens view links; it never fails and falls back to the given link.
type Shortener interface {
	Shorten(ctx context.Context, link string) string
}

// Deps carries the collaborators of the usecase layer.
type Deps struct {
	Balancer            *balancer.Balancer
	Codec               *share.Codec
	Shortener           Shortener
	DefaultMaxImbalance int
	// Rand drives synthetic players; nil uses a randomly seeded generator.
	Rand *rand.Rand
}

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx     context.Context
	log     *zap.SugaredLogger
	repo    repository.Repository
	timeout time.Duration

	balancer            *balancer.Balancer
	codec               *share.Codec
	shortener           Shortener
	defaultMaxImbalance int

	randMu sync.Mutex
	rng    *rand.Rand
	newID  func() string

	locks  sessionLocks
	flight singleflight.Group
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	timeout time.Duration,
	deps Deps,
) *Usecase {
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Usecase{
		ctx:                 ctx,
		log:                 log.Named("usecase"),
		repo:                repo,
		timeout:             timeout,
		balancer:            deps.Balancer,
		codec:               deps.Codec,
		shortener:           deps.Shortener,
		defaultMaxImbalance: deps.DefaultMaxImbalance,
		rng:                 rng,
		newID:               uuid.NewString,
		locks:               sessionLocks{locks: map[string]*sessionLock{}},
	}
}

// RequiredSize returns the roster size needed for balancing.
func (u *Usecase) RequiredSize() int {
	return u.balancer.Config().RequiredSize
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// mutate loads a session, applies fn and stores the result while holding the session lock.
func (u *Usecase) mutate(ctx context.Context, id string, fn func(s *entities.Session) error) (*entities.Session, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: session_id is required", entities.ErrInvalidArgument)
	}

	unlock := u.locks.lock(id)
	defer unlock()

	s, err := u.repo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	return u.repo.SaveSession(ctx, *s)
}

// sessionLocks serializes read-modify-write cycles per session.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	sl, ok := l.locks[id]
	if !ok {
		sl = &sessionLock{}
		l.locks[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()

		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

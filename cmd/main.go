// Package main wires the HTTP server for the team builder service.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/good-enough-software/team-builder/config"
	"github.com/good-enough-software/team-builder/internal/balancer"
	api "github.com/good-enough-software/team-builder/internal/oapi"
	"github.com/good-enough-software/team-builder/internal/repository"
	"github.com/good-enough-software/team-builder/internal/share"
	"github.com/good-enough-software/team-builder/internal/transport/http/middleware"
	handlers_fiber "github.com/good-enough-software/team-builder/internal/transport/http/server/handlers-fiber"
	"github.com/good-enough-software/team-builder/internal/usecase"
	"github.com/good-enough-software/team-builder/internal/usecase/domain"
	"github.com/good-enough-software/team-builder/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	repo, err := repository.New(cfg.Repository.Backend, log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	balancerLog := log.Named("balancer")
	b, err := balancer.New(balancer.Config{
		RequiredSize: cfg.Balancer.RequiredSize,
		GroupCount:   cfg.Balancer.GroupCount,
		MaxAttempts:  cfg.Balancer.MaxAttempts,
	}, balancer.WithAttemptObserver(func(a balancer.Attempt) {
		if a.Improved {
			balancerLog.Debugw("improved split", "attempt", a.Number, "imbalance", a.BestImbalance)
		}
	}))
	if err != nil {
		log.Errorw("balancer initialization error", "error", err)
		return
	}

	uc := usecase.New(log, ctx, repo, cfg.HTTP.RequestTimeout, domain.Deps{
		Balancer: b,
		Codec: share.NewCodec(cfg.Share.BaseURL, share.Limits{
			MaxPlayers: cfg.Balancer.RequiredSize,
			MaxTeams:   cfg.Balancer.GroupCount,
		}),
		Shortener:           share.NewShortener(log, cfg.Share.ShortenerURL, cfg.Share.ShortenerTimeout),
		DefaultMaxImbalance: cfg.Balancer.DefaultMaxImbalance,
	})

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log))

	serv.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	h := handlers_fiber.NewHandler(log, uc)
	api.RegisterHandlers(serv, h)

	go func() {
		log.Infow("listening", "addr", cfg.ServerAddr(), "backend", cfg.Repository.Backend)
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := serv.ShutdownWithContext(shutdownCtx); err != nil {
		log.Warnw("server shutdown", "timeout", cfg.Server.ShutdownTimeout, "error", err)
	}
}

package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	sessioncontext "teamdash/frontend/shared/context"
	"teamdash/infrastructure/audit"
	"teamdash/infrastructure/cache"
	"teamdash/infrastructure/config"
	httpserver "teamdash/infrastructure/http"
	"teamdash/infrastructure/metrics"
	"teamdash/infrastructure/sqlite"
	"teamdash/team"
)

const sweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	slog.SetDefault(cfg.Logger())

	db, err := sqlite.OpenDB(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	seed, err := team.LoadSeed(cfg.SeedPath)
	if err != nil {
		log.Fatalf("load seed: %v", err)
	}

	workspaces := cache.NewWorkspaceCache()
	m := metrics.New(workspaces.Len)
	auditSvc := audit.NewService()

	server := httpserver.NewServer(cfg.Addr, db, workspaces, auditSvc, m, seed, httpserver.Options{
		LoadingDelay: cfg.LoadingDelay,
		WorkspaceTTL: cfg.WorkspaceTTL,
		Viewer:       sessioncontext.Viewer{Name: cfg.ViewerName, Role: cfg.ViewerRole},
	})
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	slog.Info("teamdash listening",
		slog.String("addr", cfg.Addr),
		slog.String("sqlite_path", cfg.SQLitePath),
		slog.Int("seed_users", len(seed)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				server.SweepIdle()
			}
		}
	})
	g.Go(func() error {
		<-ctx.Done()
		return server.Stop()
	})

	if err := g.Wait(); err != nil {
		slog.Error("graceful shutdown error", slog.Any("err", err))
	}
	workspaces.Close()
}

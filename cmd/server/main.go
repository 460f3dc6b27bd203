package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "deepmine/internal/adapter/http"
	metricsinmem "deepmine/internal/adapter/metrics/inmemory"
	"deepmine/internal/adapter/notify"
	gormrepo "deepmine/internal/adapter/repo/gorm"
	"deepmine/internal/adapter/repo/memory"
	"deepmine/internal/adapter/stream"
	"deepmine/internal/app/play"
	"deepmine/internal/app/ports"
	"deepmine/internal/app/sim"
	"deepmine/internal/domain/calendar"
	"deepmine/internal/domain/mine"
	"deepmine/internal/platform/config"
	"deepmine/internal/platform/logger"
	"deepmine/migrations"

	"github.com/cloudwego/hertz/pkg/app/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("deepmine server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	stores, err := buildStores(ctx, cfg, log)
	if err != nil {
		return err
	}

	kpi := metricsinmem.NewRecorder()
	hub := stream.NewHub(log.Named("stream"))
	svc := play.NewService(play.Deps{
		Sessions:  stores.Sessions,
		Events:    stores.Events,
		TxManager: stores.Tx,
		Metrics:   kpi,
		Notifier:  notify.Fanout{notify.Log{Logger: log.Named("notify")}, hub},
		Logger:    log.Named("mine"),
	}, serviceConfig(cfg))
	if err := svc.Load(ctx); err != nil {
		return err
	}

	h := httpadapter.Handler{Mine: svc, KPI: kpi}
	s := server.Default(server.WithHostPorts(cfg.HTTPAddr), server.WithExitWaitTime(shutdownTimeout))
	h.RegisterRoutes(s)

	streamSrv := &http.Server{
		Addr:              cfg.StreamAddr,
		Handler:           hub.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hub.Run(ctx) })
	g.Go(func() error { return svc.Run(ctx) })
	g.Go(func() error {
		log.Info("deepmine api listening", zap.String("addr", cfg.HTTPAddr), zap.String("player_id", cfg.PlayerID))
		if err := s.Run(); err != nil && ctx.Err() == nil {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info("deepmine stream listening", zap.String("addr", cfg.StreamAddr))
		if err := streamSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("stream server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return errors.Join(s.Shutdown(shutdownCtx), streamSrv.Shutdown(shutdownCtx))
	})
	return g.Wait()
}

type stores struct {
	Sessions ports.SessionRepository
	Events   ports.EventRepository
	Tx       ports.TxManager
}

// buildStores falls back to the in-memory store when no DSN is configured.
func buildStores(ctx context.Context, cfg config.Config, log *zap.Logger) (stores, error) {
	if cfg.DatabaseDSN == "" {
		log.Warn("DEEPMINE_DB_DSN not set, mine sessions will not survive a restart")
		store := memory.NewStore()
		return stores{
			Sessions: memory.NewSessionRepo(store),
			Events:   memory.NewEventRepo(store),
			Tx:       memory.NewTxManager(store),
		}, nil
	}

	db, err := gormrepo.OpenPostgres(ctx, cfg.DatabaseDSN)
	if err != nil {
		return stores{}, fmt.Errorf("open postgres: %w", err)
	}
	if cfg.AutoMigrate {
		if err := gormrepo.ApplyMigrations(ctx, db, migrations.FS, log.Named("migrate")); err != nil {
			return stores{}, fmt.Errorf("apply migrations: %w", err)
		}
	}
	return stores{
		Sessions: gormrepo.NewSessionRepo(db),
		Events:   gormrepo.NewEventRepo(db),
		Tx:       gormrepo.NewTxManager(db),
	}, nil
}

func serviceConfig(cfg config.Config) play.Config {
	return play.Config{
		PlayerID:     cfg.PlayerID,
		TickInterval: cfg.TickInterval,
		Clock: calendar.NewClock(calendar.ClockConfig{
			StartAt:       time.Unix(cfg.ClockStartAt, 0),
			DayDuration:   cfg.DayDuration,
			NightDuration: cfg.NightDuration,
		}),
		Player: sim.PlayerStats{
			Health:    cfg.Player.MaxHealth,
			MaxHealth: cfg.Player.MaxHealth,
			Gold:      cfg.Player.Gold,
			Tool:      mine.ToolKind(cfg.Player.Tool),
			Tier:      cfg.Player.ToolTier(),
		},
		LootSeed: cfg.LootSeed,
	}
}

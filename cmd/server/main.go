package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fyptrack/fyptrack/internal/app"
	"github.com/fyptrack/fyptrack/internal/config"
	"github.com/fyptrack/fyptrack/internal/jobs"
	"github.com/fyptrack/fyptrack/internal/logging"
	"github.com/fyptrack/fyptrack/internal/observability"
	"github.com/fyptrack/fyptrack/internal/service"
	"github.com/fyptrack/fyptrack/internal/store"
	"github.com/fyptrack/fyptrack/internal/store/pg"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer lg.Closer()
	logger := lg.Base

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "fyptrack")
	if err != nil {
		logger.Warn("sentry init failed", zap.Error(err))
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := pg.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("postgres", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := pg.Migrate(db); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	st := pg.New(db)
	if cfg.SeedDemo {
		if err := store.SeedDemo(ctx, st); err != nil {
			// Reruns hit unique indexes; that just means the demo data is
			// already there.
			logger.Warn("seed demo data", zap.Error(err))
		} else {
			logger.Info("demo data seeded")
		}
	}

	svc := service.New(st, logger, cfg.GradeBands)

	runner := jobs.New(ctx)
	deadlines := &jobs.Deadlines{
		Store:        st,
		Log:          logger,
		ReminderDays: cfg.ReminderDays,
		Now:          func() time.Time { return time.Now().In(cfg.Location) },
	}
	runner.Every(24*time.Hour, "deadline_reminders", deadlines.Run)
	runner.Every(time.Minute, "status_gauges", jobs.RefreshStatusGauges(st))

	srv := app.NewServer(svc, logger, db)
	app.StartHTTP(ctx, cfg.HTTPAddr, srv.Handler())
	logger.Info("server started", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.Env))

	<-ctx.Done()
	logger.Info("shutting down")
	time.Sleep(500 * time.Millisecond)
}

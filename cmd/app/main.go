package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pizzeria/cmd"
	httpadapter "pizzeria/internal/adapters/in/http"
	pgadapter "pizzeria/internal/adapters/out/postgres"
	"pizzeria/internal/pkg/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	retcode := 0
	defer func() {
		os.Exit(retcode)
	}()

	if err := run(ctx); err != nil {
		slog.ErrorContext(ctx, "pizzeria stopped with error", "error", err)
		retcode = 1
	}
}

func run(ctx context.Context) (err error) {
	cfg, err := cmd.LoadConfig(".env")
	if err != nil {
		return err
	}

	logger, otelShutdown, err := telemetry.Setup(ctx, telemetry.Settings{
		ServiceName:    cfg.AppName,
		ServiceVersion: cfg.AppVersion,
		Enabled:        cfg.OTelEnabled,
		Endpoint:       cfg.OTelEndpoint,
	})
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, otelShutdown(context.Background()))
	}()

	gormDB, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return err
	}
	if err = pgadapter.Migrate(gormDB); err != nil {
		return err
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			return err
		}
		defer func() { _ = natsConn.Drain() }()
		logger.InfoContext(ctx, "Connected to NATS", "url", cfg.NATSURL, "prefix", cfg.NATSSubjectPrefix)
	}

	root, err := cmd.NewCompositionRoot(cfg, gormDB, natsConn, logger)
	if err != nil {
		return err
	}

	handlers, err := root.HTTPHandlers()
	if err != nil {
		return err
	}
	health, err := root.CreateHealth()
	if err != nil {
		return err
	}

	jobManager, err := root.CreateJobManager()
	if err != nil {
		return err
	}
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := httpadapter.NewEcho(logger, cfg.AppName)
	err = httpadapter.NewServer(handlers, health, logger).
		Register(e, httpadapter.JWTAuth(cfg.JWTSecret), root.CreateRealtimeHandler().Serve)
	if err != nil {
		return err
	}

	errChan := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "Listening for requests", "address", cfg.HTTPAddress())
		errChan <- e.Start(cfg.HTTPAddress())
	}()

	select {
	case err = <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.InfoContext(shutdownCtx, "Shutting down")
	return e.Shutdown(shutdownCtx)
}

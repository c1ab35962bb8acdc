package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"treasury/application"
	"treasury/config"
	"treasury/database"
	"treasury/events"
	"treasury/infrastructure"
	"treasury/repository"
	"treasury/service"

	log "github.com/sirupsen/logrus"
)

// ErrRunInProgress is returned when the run lock is held elsewhere
var ErrRunInProgress = errors.New("another interest run is in progress")

// Run loads configuration and executes one interest run for today's date
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	configureLogging(cfg)

	convention, err := service.ParseDayCountConvention(cfg.DayCountConvention)
	if err != nil {
		return err
	}

	today := cfg.Today(time.Now())
	log.WithFields(log.Fields{
		"as_of":       today.Format(time.DateOnly),
		"timezone":    cfg.Location.String(),
		"day_count":   convention,
		"timeout":     cfg.RunTimeout.String(),
		"environment": cfg.Environment,
	}).Info("Starting interest accrual")

	runCtx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
	defer cancel()

	stopWatchdog := StartWatchdog(runCtx, cfg.WatchdogGrace, os.Exit)
	defer stopWatchdog()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(runCtx, cfg.ConnectionURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully")

	if cfg.RedisURL != "" {
		release, err := acquireRunLock(runCtx, cfg)
		if err != nil {
			return err
		}
		defer release()
	}

	eventBus := events.NewBus()
	stats := application.NewRunStats(eventBus)

	if cfg.NATSURL != "" {
		nc, err := infrastructure.ConnectNATS(cfg.NATSURL)
		if err != nil {
			return err
		}
		forwarder := infrastructure.NewNATSEventForwarder(nc, cfg.NATSSubjectPrefix)
		forwarder.Attach(eventBus)
		defer forwarder.Close(5 * time.Second)
	}
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	worker := application.NewInterestRunWorker(
		service.NewRateResolver(uowFactory),
		service.NewCurrentInterestService(uowFactory),
		service.NewEarlyReleaseService(uowFactory),
		service.NewFixedInterestService(uowFactory, convention),
		service.NewInterestRunService(uowFactory),
		stats,
		cfg.FailOnEntityErrors,
	)

	if _, err := worker.Run(runCtx, today); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("interest run exceeded %s: %w", cfg.RunTimeout, err)
		}
		return err
	}

	return nil
}

func configureLogging(cfg *config.Config) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	log.SetLevel(cfg.LogLevel)
}

// acquireRunLock takes the Redis run lock and returns its release func
func acquireRunLock(ctx context.Context, cfg *config.Config) (func(), error) {
	client, err := infrastructure.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	lock := infrastructure.NewRedisRunLock(client, cfg.RunLockKey, cfg.LockTTL())
	if err := lock.Acquire(ctx); err != nil {
		client.Close()
		if errors.Is(err, infrastructure.ErrLockHeld) {
			return nil, ErrRunInProgress
		}
		return nil, err
	}

	return func() {
		// The run context may already be done; release on a fresh one
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lock.Release(releaseCtx); err != nil {
			log.WithError(err).Warn("Failed to release run lock")
		}
		client.Close()
	}, nil
}

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/limbo/wellspring/internal/notify"
	"github.com/limbo/wellspring/internal/repository"
	"github.com/limbo/wellspring/internal/scheduler"
	"github.com/limbo/wellspring/pkg/cleanup"
	"github.com/limbo/wellspring/pkg/config"
)

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	remindersRepo := repository.NewRemindersRepo(&dbCfg)

	sender := notify.NewFCMSender(notify.FCMCfg{
		CredentialsPath: cfg.GetString("FIREBASE_CREDENTIALS_PATH"),
		ProjectID:       cfg.GetString("FIREBASE_PROJECT_ID"),
	}, slog.Default())

	sched := scheduler.New(remindersRepo, sender, scheduler.Opts{
		Interval: cfg.GetDuration("SCHEDULER_INTERVAL", time.Minute),
		Window: scheduler.Window{
			Lookback:  cfg.GetDuration("REMINDER_LOOKBACK", 2*time.Minute),
			Lookahead: cfg.GetDuration("REMINDER_LOOKAHEAD", time.Minute),
		},
		Logger: slog.Default(),
	})
	if err := sched.Start(context.Background()); err != nil {
		log.Fatal("starting scheduler error: " + err.Error())
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	// Let the in-flight tick commit before releasing the pool.
	sched.Stop()
	cleanup.CleanUp()
}

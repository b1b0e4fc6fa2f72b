package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"focusdo/internal/calendar"
	"focusdo/internal/config"
	"focusdo/internal/logging"
	"focusdo/internal/notify"
	"focusdo/internal/remote"
	"focusdo/internal/scheduler"
	"focusdo/internal/stats"
	"focusdo/internal/storage"
	"focusdo/internal/store"
	syncpkg "focusdo/internal/sync"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("config")
	}
	log := logging.New(cfg.Env)

	db, err := storage.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	var remoteStore remote.Store
	if cfg.Remote.BaseURL != "" {
		remoteStore = remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.Token, cfg.Remote.Timeout)
		log.Info().Str("base_url", cfg.Remote.BaseURL).Msg("remote sync enabled")
	} else {
		remoteStore = remote.NewMemory()
		log.Info().Msg("no remote configured, running local-only")
	}

	statsSvc, err := stats.NewService(db, remoteStore, log)
	if err != nil {
		log.Fatal().Err(err).Msg("stats service")
	}

	var notifier *notify.TelegramNotifier
	var reminders store.ReminderScheduler
	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
		notifier, err = notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, log)
		if err != nil {
			log.Fatal().Err(err).Msg("telegram notifier")
		}
		reminders = notify.NewPlanner(notifier)
		log.Info().Int64("chat_id", cfg.Telegram.ChatID).Msg("reminders enabled")
	}

	var mirror store.CalendarMirror = calendar.Nop{}
	if cfg.Calendar.CalendarName != "" {
		google, err := calendar.NewGoogle(ctx, cfg.Calendar.CredentialsDir, cfg.Calendar.CalendarName, log)
		if err != nil {
			log.Warn().Err(err).Msg("calendar mirror disabled")
		} else {
			mirror = google
			log.Info().Str("calendar", cfg.Calendar.CalendarName).Msg("calendar mirror enabled")
		}
	}

	st := store.New(store.Options{
		Persister:       storage.NewBlobStore(db, log),
		Remote:          remoteStore,
		Reminders:       reminders,
		Calendar:        mirror,
		Completions:     statsSvc,
		Logger:          log,
		TrashMaxEntries: cfg.TrashMaxEntries,
		TrashMaxAge:     cfg.TrashMaxAge,
	})
	defer st.Close()
	st.LoadLocal()

	reconciler := syncpkg.NewReconciler(st, remoteStore, cfg.SyncTimeout, log)

	sched := scheduler.New(time.Local)
	if _, err := sched.EveryInterval(cfg.SyncInterval, reconciler.Tick); err != nil {
		log.Fatal().Err(err).Msg("schedule sync")
	}
	if notifier != nil {
		if _, err := sched.EveryInterval(cfg.ReminderInterval, func() {
			notifier.DispatchDue(time.Now())
		}); err != nil {
			log.Fatal().Err(err).Msg("schedule reminders")
		}
	}
	// The stats merge runs daily whether or not a summary goes out.
	if _, err := sched.Daily(cfg.DailySummaryAt, func() {
		statsSvc.MergeRemote(ctx, 7)
		if notifier == nil {
			return
		}
		now := time.Now()
		text := notify.BuildDailySummary(st.Tasks(), now, statsSvc.WeeklyProgress(now), cfg.WeeklyGoal)
		notifier.SendSummary(text)
	}); err != nil {
		log.Fatal().Err(err).Msg("schedule daily summary")
	}
	sched.Start()
	defer sched.Stop()

	// First pass right away instead of waiting out the first interval.
	go reconciler.Tick()

	log.Info().Msg("focusdo started")
	<-ctx.Done()
	log.Info().Msg("shutting down")
}

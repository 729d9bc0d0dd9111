package main

import (
	"os"
	"time"

	"github.com/gearclash/gearclash/internal/config"
	"github.com/gearclash/gearclash/internal/logging"
	"github.com/gearclash/gearclash/internal/service"
	"github.com/gearclash/gearclash/internal/storage"

	"github.com/go-co-op/gocron/v2"
)

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid gearclash configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string, cfg *config.LoadedConfig) storage.Repository {
	db, err := storage.OpenDB(dbPath, cfg.Cards)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db, cfg.Cards)
}

func buildSettings(cfg *config.LoadedConfig) service.Settings {
	return service.Settings{
		Catalog:            cfg.Catalog,
		Categories:         cfg.Categories,
		WinXP:              cfg.Rewards.WinXP,
		LoseXP:             cfg.Rewards.LoseXP,
		DrawXP:             cfg.Rewards.DrawXP,
		WeeklyChallengeCap: cfg.WeeklyChallengeCap,
		RateWindow:         7 * 24 * time.Hour,
		ChallengeTTL:       cfg.ChallengeTTL,
	}
}

// startExpirySweeper runs the background job that flips overdue pending
// challenges to expired. Expiry is also checked lazily on every read, so
// this only keeps the stored rows from going stale.
func startExpirySweeper(repo storage.Repository) gocron.Scheduler {
	sched, err := gocron.NewScheduler()
	if err != nil {
		logging.Fatal("Failed to create scheduler", err, nil)
	}
	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			n, err := repo.ExpireOverdueChallenges(time.Now())
			if err != nil {
				logging.Error("expiry sweep failed", err, nil)
				return
			}
			if n > 0 {
				logging.Info("expired overdue challenges", logging.Fields{"count": n})
			}
		}),
	)
	if err != nil {
		logging.Fatal("Failed to schedule expiry sweep", err, nil)
	}
	sched.Start()
	return sched
}

package main

import (
	"context"
	"log"
	"time"

	"github.com/hirendodiya515/roller-management-system/internal/config"
	"github.com/hirendodiya515/roller-management-system/internal/db"
	"github.com/hirendodiya515/roller-management-system/internal/email"
	"github.com/hirendodiya515/roller-management-system/internal/repositories"
	"github.com/hirendodiya515/roller-management-system/internal/services"
)

// One-shot delay-alert sweep, meant to be invoked from cron. The server's
// in-process scheduler should be disabled (alerts.scheduler_enabled: false)
// when this binary runs.
func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	settingRepo := repositories.NewSettingRepository(pool)
	rollerRepo := repositories.NewRollerRepository(pool)
	recordRepo := repositories.NewRecordRepository(pool)
	cooldownRepo := repositories.NewCooldownRepository(pool)

	alertService := services.NewAlertService(settingRepo, rollerRepo, recordRepo, cooldownRepo, email.NewEmailJSClient())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := alertService.RunSweep(ctx)
	if err != nil {
		log.Fatalf("[AlertSweep] Sweep failed: %v", err)
	}
	log.Printf("[AlertSweep] Sweep done: checked=%d alertsSent=%d", result.Checked, result.AlertsSent)
}

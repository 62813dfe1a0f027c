package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hirendodiya515/roller-management-system/internal/auth"
	"github.com/hirendodiya515/roller-management-system/internal/cache"
	"github.com/hirendodiya515/roller-management-system/internal/config"
	"github.com/hirendodiya515/roller-management-system/internal/database"
	"github.com/hirendodiya515/roller-management-system/internal/db"
	"github.com/hirendodiya515/roller-management-system/internal/email"
	"github.com/hirendodiya515/roller-management-system/internal/handlers"
	"github.com/hirendodiya515/roller-management-system/internal/health"
	h "github.com/hirendodiya515/roller-management-system/internal/http"
	"github.com/hirendodiya515/roller-management-system/internal/middleware"
	"github.com/hirendodiya515/roller-management-system/internal/repositories"
	"github.com/hirendodiya515/roller-management-system/internal/services"
	"github.com/hirendodiya515/roller-management-system/internal/timeutil"
	"github.com/hirendodiya515/roller-management-system/internal/ws"
)

// runSweepScheduler fires the delay-alert sweep once a day at the configured
// IST time until ctx is cancelled.
func runSweepScheduler(ctx context.Context, alertService *services.AlertService, hour, minute int) {
	for {
		next := timeutil.NextDailyRun(timeutil.Now(), hour, minute)
		log.Printf("[AlertSweep] Next scheduled run: %s", timeutil.FormatIST(next, "2006-01-02 15:04:05"))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		result, err := alertService.RunSweep(ctx)
		if err != nil {
			log.Printf("[AlertSweep] Scheduled sweep failed: %v", err)
			continue
		}
		log.Printf("[AlertSweep] Scheduled sweep done: checked=%d alertsSent=%d", result.Checked, result.AlertsSent)
	}
}

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (status derivation will skip cache)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	migrator := database.NewMigrator(pool)
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migrator.RunMigrations(migrateCtx); err != nil {
		cancelMigrate()
		log.Fatalf("Failed to run migrations: %v", err)
	}
	cancelMigrate()

	// Initialize JWT manager and health checker
	jwtManager := auth.NewJWTManager(cfg)
	healthChecker := health.NewHealthChecker(pool)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	rollerRepo := repositories.NewRollerRepository(pool)
	recordRepo := repositories.NewRecordRepository(pool)
	settingRepo := repositories.NewSettingRepository(pool)
	formConfigRepo := repositories.NewFormConfigRepository(pool)
	cooldownRepo := repositories.NewCooldownRepository(pool)

	// Live-update hub for roller changes
	hub := ws.NewHub()

	// Initialize services
	userService := services.NewUserService(userRepo, jwtManager)
	rollerService := services.NewRollerService(rollerRepo, hub)
	recordService := services.NewRecordService(recordRepo, rollerRepo, hub)
	settingService := services.NewSettingService(settingRepo)
	dashboardService := services.NewDashboardService(rollerRepo, recordRepo)
	alertService := services.NewAlertService(settingRepo, rollerRepo, recordRepo, cooldownRepo, email.NewEmailJSClient())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	rollerHandler := handlers.NewRollerHandler(rollerService)
	recordHandler := handlers.NewRecordHandler(recordService)
	settingHandler := handlers.NewSettingHandler(settingService)
	formConfigHandler := handlers.NewFormConfigHandler(formConfigRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	alertHandler := handlers.NewAlertHandler(alertService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Initialize middleware and router
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(authHandler, userHandler, rollerHandler, recordHandler,
		settingHandler, formConfigHandler, dashboardHandler, alertHandler,
		healthHandler, hub, authMiddleware)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the daily sweep unless an external cron runs the sweep binary
	if cfg.Alerts.SchedulerEnabled {
		go runSweepScheduler(ctx, alertService, cfg.Alerts.SweepHour, cfg.Alerts.SweepMinute)
	} else {
		log.Println("[AlertSweep] In-process scheduler disabled")
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handler,
	}

	go func() {
		log.Printf("Server running on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hirendodiya515/roller-management-system/internal/handlers"
	"github.com/hirendodiya515/roller-management-system/internal/middleware"
	"github.com/hirendodiya515/roller-management-system/internal/models"
	"github.com/hirendodiya515/roller-management-system/internal/ws"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	rollerHandler *handlers.RollerHandler,
	recordHandler *handlers.RecordHandler,
	settingHandler *handlers.SettingHandler,
	formConfigHandler *handlers.FormConfigHandler,
	dashboardHandler *handlers.DashboardHandler,
	alertHandler *handlers.AlertHandler,
	healthHandler *handlers.HealthHandler,
	hub *ws.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Rollers
	rollersAPI := r.PathPrefix("/api/rollers").Subrouter()
	rollersAPI.Use(authMiddleware.Authenticate)
	rollersAPI.HandleFunc("", rollerHandler.List).Methods("GET")
	rollersAPI.HandleFunc("", rollerHandler.Create).Methods("POST")
	rollersAPI.HandleFunc("/{id}", rollerHandler.Get).Methods("GET")
	rollersAPI.HandleFunc("/{id}", rollerHandler.Update).Methods("PUT")
	rollersAPI.HandleFunc("/{id}/approve", rollerHandler.Approve).Methods("PATCH")
	rollersAPI.HandleFunc("/{id}/status", recordHandler.Status).Methods("GET")
	rollersAPI.HandleFunc("/{id}/stats", recordHandler.Stats).Methods("GET")

	// Protected API routes - Activity Records (nested under rollers)
	rollersAPI.HandleFunc("/{id}/records", recordHandler.List).Methods("GET")
	rollersAPI.HandleFunc("/{id}/records", recordHandler.Create).Methods("POST")
	rollersAPI.HandleFunc("/{id}/records/{recordId}", recordHandler.Update).Methods("PUT")
	rollersAPI.HandleFunc("/{id}/records/{recordId}", recordHandler.Delete).Methods("DELETE")
	rollersAPI.HandleFunc("/{id}/records/{recordId}/approve", recordHandler.Approve).Methods("PATCH")

	// Protected API routes - Settings
	settingsAPI := r.PathPrefix("/api/settings").Subrouter()
	settingsAPI.Use(authMiddleware.Authenticate)
	settingsAPI.HandleFunc("/{key}", settingHandler.Get).Methods("GET")
	settingsAPI.HandleFunc("/{key}", settingHandler.Update).Methods("PUT")

	// Protected API routes - Form configs
	formConfigsAPI := r.PathPrefix("/api/form-configs").Subrouter()
	formConfigsAPI.Use(authMiddleware.Authenticate)
	formConfigsAPI.HandleFunc("/{activity}", formConfigHandler.Get).Methods("GET")
	formConfigsAPI.HandleFunc("/{activity}", formConfigHandler.Upsert).Methods("PUT")

	// Protected API routes - Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("/overview", dashboardHandler.Overview).Methods("GET")

	// Protected API routes - Alerts (admin only)
	alertsAPI := r.PathPrefix("/api/alerts").Subrouter()
	alertsAPI.Use(authMiddleware.Authenticate)
	alertsAPI.Use(middleware.RequireRole(models.RoleAdmin))
	alertsAPI.HandleFunc("/trigger", alertHandler.TriggerSweep).Methods("POST")
	alertsAPI.HandleFunc("/test-email", alertHandler.TestEmail).Methods("POST")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.Use(middleware.RequireRole(models.RoleAdmin))
	usersAPI.HandleFunc("", userHandler.List).Methods("GET")
	usersAPI.HandleFunc("/{id}/role", userHandler.UpdateRole).Methods("PATCH")

	// Live roller updates over websocket
	r.HandleFunc("/ws/rollers", hub.ServeWS).Methods("GET")

	// Health endpoint (no auth required - for probes)
	r.HandleFunc("/healthz", healthHandler.Check).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

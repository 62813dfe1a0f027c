package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hirendodiya515/roller-management-system/internal/middleware"
	"github.com/hirendodiya515/roller-management-system/internal/models"
	"github.com/hirendodiya515/roller-management-system/internal/services"
	"github.com/hirendodiya515/roller-management-system/pkg/utils"
)

type SettingHandler struct {
	Service *services.SettingService
}

func NewSettingHandler(service *services.SettingService) *SettingHandler {
	return &SettingHandler{Service: service}
}

func (h *SettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	raw, err := h.Service.Get(r.Context(), key)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if raw == nil {
		utils.Error(w, http.StatusNotFound, "Setting not configured")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}

func (h *SettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, models.RoleAdmin) {
		return
	}
	key := mux.Vars(r)["key"]

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil || !json.Valid(body) {
		utils.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	if err := h.Service.Update(r.Context(), key, body, userID); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"key": key})
}

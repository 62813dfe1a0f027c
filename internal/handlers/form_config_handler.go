package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hirendodiya515/roller-management-system/internal/models"
	"github.com/hirendodiya515/roller-management-system/internal/repositories"
	"github.com/hirendodiya515/roller-management-system/pkg/utils"
)

type FormConfigHandler struct {
	Repo *repositories.FormConfigRepository
}

func NewFormConfigHandler(repo *repositories.FormConfigRepository) *FormConfigHandler {
	return &FormConfigHandler{Repo: repo}
}

// Get returns the form definition for an activity type, falling back to the
// default field set when none has been saved.
func (h *FormConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	activity := mux.Vars(r)["activity"]

	cfg, err := h.Repo.Get(r.Context(), activity)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if cfg == nil {
		cfg = &models.FormConfig{Activity: activity, Fields: models.DefaultFormFields()}
	}
	utils.JSON(w, http.StatusOK, cfg)
}

func (h *FormConfigHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, models.RoleAdmin) {
		return
	}
	activity := mux.Vars(r)["activity"]

	var cfg models.FormConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	cfg.Activity = activity

	if err := h.Repo.Upsert(r.Context(), &cfg); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, cfg)
}

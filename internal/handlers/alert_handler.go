package handlers

import (
	"net/http"

	"github.com/hirendodiya515/roller-management-system/internal/email"
	"github.com/hirendodiya515/roller-management-system/internal/services"
	"github.com/hirendodiya515/roller-management-system/pkg/utils"
)

type AlertHandler struct {
	Service *services.AlertService
}

func NewAlertHandler(service *services.AlertService) *AlertHandler {
	return &AlertHandler{Service: service}
}

// TriggerSweep runs the delay-alert check on demand (the "run alert check
// now" button on the settings page).
func (h *AlertHandler) TriggerSweep(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.RunSweep(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

// TestEmail sends a short test notification to verify EmailJS settings.
func (h *AlertHandler) TestEmail(w http.ResponseWriter, r *http.Request) {
	notify, err := h.Service.Settings.NotificationConfig(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if notify == nil || !notify.Complete() {
		utils.Error(w, http.StatusBadRequest, "EmailJS configuration is missing or incomplete")
		return
	}

	recipients := notify.Recipients()
	if len(recipients) == 0 {
		utils.Error(w, http.StatusBadRequest, "No recipients configured")
		return
	}

	params := email.Params{
		Title:   "Test Alert - Roller Management System",
		Message: "<p>This is a test notification. Your alert settings are working.</p>",
		Name:    "Roller Alert System",
		Email:   recipients[0],
		ToEmail: recipients[0],
	}
	if err := h.Service.Emailer.Send(r.Context(), notify, params); err != nil {
		utils.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"sent_to": recipients[0]})
}

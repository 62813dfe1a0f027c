package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hirendodiya515/roller-management-system/internal/middleware"
	"github.com/hirendodiya515/roller-management-system/internal/models"
	"github.com/hirendodiya515/roller-management-system/internal/services"
	"github.com/hirendodiya515/roller-management-system/pkg/utils"
)

type RecordHandler struct {
	Service *services.RecordService
}

func NewRecordHandler(service *services.RecordService) *RecordHandler {
	return &RecordHandler{Service: service}
}

func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	rollerID, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid roller ID")
		return
	}
	records, err := h.Service.List(r.Context(), rollerID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, records)
}

func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, models.RoleAdmin, models.RoleEditor) {
		return
	}

	rollerID, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid roller ID")
		return
	}

	var req models.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	rec, err := h.Service.Create(r.Context(), rollerID, &req, userID)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, rec)
}

func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, models.RoleAdmin, models.RoleEditor) {
		return
	}

	rollerID, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid roller ID")
		return
	}
	recordID, err := pathID(r, "recordId")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	var req models.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	rec, err := h.Service.Update(r.Context(), rollerID, recordID, &req, userID)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, rec)
}

// Approve resolves a pending record to Approved or Rejected.
func (h *RecordHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, models.RoleAdmin, models.RoleApprover) {
		return
	}

	rollerID, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid roller ID")
		return
	}
	recordID, err := pathID(r, "recordId")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	var req models.ApproveRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	approverID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	if err := h.Service.SetApproval(r.Context(), rollerID, recordID, req.Approved, approverID); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"approved": req.Approved})
}

func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	role, _ := middleware.GetRoleFromContext(r.Context())

	rollerID, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid roller ID")
		return
	}
	recordID, err := pathID(r, "recordId")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	// Admin may delete anything; an editor only a record still pending.
	if role != models.RoleAdmin {
		if role != models.RoleEditor {
			utils.Error(w, http.StatusForbidden, "Insufficient permissions")
			return
		}
		rec, err := h.Service.Records.Get(r.Context(), rollerID, recordID)
		if err != nil {
			utils.Error(w, http.StatusNotFound, "Record not found")
			return
		}
		if rec.Status != models.RecordStatusPending {
			utils.Error(w, http.StatusForbidden, "Only pending records can be deleted")
			return
		}
	}

	if err := h.Service.Delete(r.Context(), rollerID, recordID); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Status returns the derived lifecycle label for one roller.
func (h *RecordHandler) Status(w http.ResponseWriter, r *http.Request) {
	rollerID, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid roller ID")
		return
	}
	derived, err := h.Service.Status(r.Context(), rollerID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, derived)
}

func (h *RecordHandler) Stats(w http.ResponseWriter, r *http.Request) {
	rollerID, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid roller ID")
		return
	}
	stats, err := h.Service.Stats(r.Context(), rollerID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}

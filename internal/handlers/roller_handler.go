package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hirendodiya515/roller-management-system/internal/middleware"
	"github.com/hirendodiya515/roller-management-system/internal/models"
	"github.com/hirendodiya515/roller-management-system/internal/services"
	"github.com/hirendodiya515/roller-management-system/pkg/utils"
)

type RollerHandler struct {
	Service *services.RollerService
}

func NewRollerHandler(service *services.RollerService) *RollerHandler {
	return &RollerHandler{Service: service}
}

func (h *RollerHandler) List(w http.ResponseWriter, r *http.Request) {
	rollers, err := h.Service.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, rollers)
}

func (h *RollerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid roller ID")
		return
	}
	roller, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Roller not found")
		return
	}
	utils.JSON(w, http.StatusOK, roller)
}

func (h *RollerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, models.RoleAdmin, models.RoleEditor) {
		return
	}

	var req models.CreateRollerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	roller, err := h.Service.Create(r.Context(), &req, userID)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, roller)
}

func (h *RollerHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, models.RoleAdmin, models.RoleEditor) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid roller ID")
		return
	}

	var req models.UpdateRollerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	roller, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, roller)
}

func (h *RollerHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, models.RoleAdmin, models.RoleApprover) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid roller ID")
		return
	}

	if err := h.Service.Approve(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": models.RollerStatusApproved})
}

// pathID parses a numeric path variable.
func pathID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}

// requireRole writes a 403 and returns false unless the caller holds one of
// the given roles.
func requireRole(w http.ResponseWriter, r *http.Request, roles ...string) bool {
	role, ok := middleware.GetRoleFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusForbidden, "Role not found in context")
		return false
	}
	for _, allowed := range roles {
		if role == allowed {
			return true
		}
	}
	utils.Error(w, http.StatusForbidden, "Insufficient permissions")
	return false
}

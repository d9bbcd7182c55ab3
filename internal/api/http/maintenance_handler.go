package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/utils"
)

type createMaintenanceRequest struct {
	ProductID            int64  `json:"product_id"`
	IssueDescription     string `json:"issue_description"`
	PreferredServiceDate string `json:"preferred_service_date,omitempty"`
}

func (h *Handler) handleCreateMaintenanceRequest(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	var req createMaintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	var preferred *time.Time
	if req.PreferredServiceDate != "" {
		d, err := utils.ParseDate(req.PreferredServiceDate)
		if err != nil {
			respondBadRequest(w, err.Error())
			return
		}
		preferred = &d
	}

	created, err := h.maintenance.CreateRequest(r.Context(), uid, req.ProductID, req.IssueDescription, preferred)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleListMaintenanceRequests(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	user, err := h.users.GetUser(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}

	status := domain.MaintenanceStatus(r.URL.Query().Get("status"))

	var technicianID int64
	switch user.Role {
	case domain.UserRoleAdmin:
		if raw := r.URL.Query().Get("technician_id"); raw != "" {
			technicianID, err = strconv.ParseInt(raw, 10, 64)
			if err != nil {
				respondBadRequest(w, "invalid technician_id")
				return
			}
		}
	case domain.UserRoleMaintenance:
		// Technicians only see their own queue.
		technicianID = uid
	default:
		respondError(w, domain.ErrForbidden)
		return
	}

	requests, err := h.maintenance.ListRequests(r.Context(), status, technicianID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

func (h *Handler) handleGetMaintenanceRequest(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	requestID, err := pathID(r, "requestId")
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	user, err := h.users.GetUser(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}

	req, err := h.maintenance.GetRequest(r.Context(), requestID, user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

type assignMaintenanceRequest struct {
	TechnicianID       int64  `json:"technician_id"`
	ServiceDate        string `json:"service_date"`
	EstimatedCostCents int64  `json:"estimated_cost_cents"`
}

func (h *Handler) handleAssignMaintenanceRequest(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	if err := h.requireAdmin(r, uid); err != nil {
		respondError(w, err)
		return
	}
	requestID, err := pathID(r, "requestId")
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	var req assignMaintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	serviceDate, err := utils.ParseDate(req.ServiceDate)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	updated, err := h.maintenance.AssignRequest(r.Context(), requestID, req.TechnicianID, serviceDate, req.EstimatedCostCents)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

type completeMaintenanceRequest struct {
	FinalCostCents int64  `json:"final_cost_cents"`
	CompletionNote string `json:"completion_note"`
}

func (h *Handler) handleCompleteMaintenanceRequest(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	requestID, err := pathID(r, "requestId")
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	user, err := h.users.GetUser(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}

	var req completeMaintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	updated, err := h.maintenance.CompleteRequest(r.Context(), requestID, user, req.FinalCostCents, req.CompletionNote)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

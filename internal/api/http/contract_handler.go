package http

import (
	"net/http"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/service"
	"github.com/saleem-shalabi/Medi-Care-App/internal/utils"
)

func (h *Handler) handleListContracts(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	contracts, err := h.contracts.ListUserContracts(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contracts)
}

func (h *Handler) handleGetContract(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	contractID, err := pathID(r, "contractId")
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	// Admins bypass the ownership check.
	ownerID := uid
	if user, err := h.users.GetUser(r.Context(), uid); err == nil && user.Role == domain.UserRoleAdmin {
		ownerID = 0
	}

	contract, err := h.contracts.GetContract(r.Context(), ownerID, contractID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contract)
}

type extendContractRequest struct {
	NewEndDate string `json:"new_end_date"`
}

func (h *Handler) handleExtendContract(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	contractID, err := pathID(r, "contractId")
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	var req extendContractRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	newEndDate, err := utils.ParseDate(req.NewEndDate)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	order, err := h.contracts.CreateExtensionOrder(r.Context(), uid, contractID, newEndDate)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (h *Handler) handleReturnContract(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	if err := h.requireAdmin(r, uid); err != nil {
		respondError(w, err)
		return
	}
	contractID, err := pathID(r, "contractId")
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	var input service.ReturnInput
	if err := decodeJSON(r, &input); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	contract, err := h.contracts.ProcessContractReturn(r.Context(), contractID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contract)
}

type updateContractStatusRequest struct {
	Status domain.RentalStatus `json:"status"`
}

func (h *Handler) handleUpdateContractStatus(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	if err := h.requireAdmin(r, uid); err != nil {
		respondError(w, err)
		return
	}
	contractID, err := pathID(r, "contractId")
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	var req updateContractStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	contract, err := h.contracts.UpdateContractStatus(r.Context(), contractID, req.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contract)
}

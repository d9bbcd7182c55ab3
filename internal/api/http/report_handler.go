package http

import (
	"net/http"

	"github.com/saleem-shalabi/Medi-Care-App/internal/utils"
)

func (h *Handler) handleEarningsReport(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	if err := h.requireAdmin(r, uid); err != nil {
		respondError(w, err)
		return
	}

	start, err := utils.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	end, err := utils.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	report, err := h.reports.EarningsReport(r.Context(), start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

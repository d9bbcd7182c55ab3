package http

import (
	"net/http"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/service"
)

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	var input service.CreateOrderInput
	if err := decodeJSON(r, &input); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	order, err := h.orders.CreateOrderFromCart(r.Context(), uid, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// handleListOrders returns the caller's orders, or every order when an
// admin passes ?all=true.
func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	if r.URL.Query().Get("all") == "true" {
		if err := h.requireAdmin(r, uid); err != nil {
			respondError(w, err)
			return
		}
		orders, err := h.orders.ListAllOrders(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, orders)
		return
	}

	orders, err := h.orders.ListUserOrders(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	orderID, err := pathID(r, "orderId")
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		respondError(w, err)
		return
	}
	if order.UserID != uid {
		if err := h.requireAdmin(r, uid); err != nil {
			respondError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, order)
}

type updateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *Handler) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	if err := h.requireAdmin(r, uid); err != nil {
		respondError(w, err)
		return
	}
	orderID, err := pathID(r, "orderId")
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	var req updateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	order, err := h.orders.UpdateOrderStatus(r.Context(), orderID, req.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handler) handleCreateCheckout(w http.ResponseWriter, r *http.Request) {
	if _, err := userID(r); err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	orderID, err := pathID(r, "orderId")
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	url, err := h.payments.CreateCheckoutIntent(r.Context(), orderID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"checkout_url": url})
}

// handleConfirmPayment is the manual confirmation path for operators, for
// payments settled outside the provider (bank transfer, cash on delivery).
func (h *Handler) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	if err := h.requireAdmin(r, uid); err != nil {
		respondError(w, err)
		return
	}
	orderID, err := pathID(r, "orderId")
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	var details domain.PaymentDetails
	if err := decodeJSON(r, &details); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	order, err := h.payments.ConfirmOrderPayment(r.Context(), orderID, details)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handler) requireAdmin(r *http.Request, uid int64) error {
	user, err := h.users.GetUser(r.Context(), uid)
	if err != nil {
		return err
	}
	if user.Role != domain.UserRoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}

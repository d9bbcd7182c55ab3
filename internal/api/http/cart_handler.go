package http

import (
	"net/http"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
)

type addToCartRequest struct {
	ProductID       int64                  `json:"product_id"`
	Quantity        int32                  `json:"quantity"`
	TransactionType domain.TransactionType `json:"transaction_type"`
}

func (h *Handler) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.ProductID <= 0 || req.Quantity <= 0 {
		respondBadRequest(w, "product_id and quantity are required")
		return
	}

	item, err := h.carts.AddToCart(r.Context(), uid, req.ProductID, req.Quantity, req.TransactionType)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

type updateCartItemRequest struct {
	Quantity int32 `json:"quantity"`
}

func (h *Handler) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	var req updateCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	if err := h.carts.UpdateCartItem(r.Context(), uid, itemID, req.Quantity); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	if err := h.carts.RemoveFromCart(r.Context(), uid, itemID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) handleListCart(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	items, err := h.carts.ListCart(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

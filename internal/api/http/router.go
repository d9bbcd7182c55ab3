package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/logger"
	"github.com/saleem-shalabi/Medi-Care-App/internal/service"
)

// Handler bundles the service layer behind the REST surface. Caller
// identity arrives in the X-User-ID header, set by the upstream gateway
// after authentication.
type Handler struct {
	carts       service.CartService
	orders      service.OrderService
	payments    service.PaymentService
	contracts   service.ContractService
	maintenance service.MaintenanceService
	reports     service.ReportService
	users       service.UserLookup
}

func NewHandler(
	carts service.CartService,
	orders service.OrderService,
	payments service.PaymentService,
	contracts service.ContractService,
	maintenance service.MaintenanceService,
	reports service.ReportService,
	users service.UserLookup,
) *Handler {
	return &Handler{
		carts:       carts,
		orders:      orders,
		payments:    payments,
		contracts:   contracts,
		maintenance: maintenance,
		reports:     reports,
		users:       users,
	}
}

// Router wires every route. The webhook route must see the raw request
// body, so no body-consuming middleware goes in front of it.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/webhooks/payment", h.handlePaymentWebhook).Methods(http.MethodPost)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/cart", h.handleListCart).Methods(http.MethodGet)
	api.HandleFunc("/cart", h.handleAddToCart).Methods(http.MethodPost)
	api.HandleFunc("/cart/{itemId}", h.handleUpdateCartItem).Methods(http.MethodPatch)
	api.HandleFunc("/cart/{itemId}", h.handleRemoveFromCart).Methods(http.MethodDelete)

	api.HandleFunc("/orders", h.handleCreateOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders", h.handleListOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/{orderId}", h.handleGetOrder).Methods(http.MethodGet)
	api.HandleFunc("/orders/{orderId}/status", h.handleUpdateOrderStatus).Methods(http.MethodPatch)
	api.HandleFunc("/orders/{orderId}/checkout", h.handleCreateCheckout).Methods(http.MethodPost)
	api.HandleFunc("/orders/{orderId}/confirm", h.handleConfirmPayment).Methods(http.MethodPost)

	api.HandleFunc("/contracts", h.handleListContracts).Methods(http.MethodGet)
	api.HandleFunc("/contracts/{contractId}", h.handleGetContract).Methods(http.MethodGet)
	api.HandleFunc("/contracts/{contractId}/extend", h.handleExtendContract).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{contractId}/return", h.handleReturnContract).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{contractId}/status", h.handleUpdateContractStatus).Methods(http.MethodPatch)

	api.HandleFunc("/maintenance-requests", h.handleCreateMaintenanceRequest).Methods(http.MethodPost)
	api.HandleFunc("/maintenance-requests", h.handleListMaintenanceRequests).Methods(http.MethodGet)
	api.HandleFunc("/maintenance-requests/{requestId}", h.handleGetMaintenanceRequest).Methods(http.MethodGet)
	api.HandleFunc("/maintenance-requests/{requestId}/assign", h.handleAssignMaintenanceRequest).Methods(http.MethodPost)
	api.HandleFunc("/maintenance-requests/{requestId}/complete", h.handleCompleteMaintenanceRequest).Methods(http.MethodPost)

	api.HandleFunc("/reports/earnings", h.handleEarningsReport).Methods(http.MethodGet)

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// userID extracts the authenticated caller id from the request.
func userID(r *http.Request) (int64, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return 0, errors.New("missing X-User-ID header")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid X-User-ID header")
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// respondError maps domain sentinels onto HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrContractNotFound),
		errors.Is(err, domain.ErrCartItemNotFound),
		errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrMissingRentalDates),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidEndDate),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidCondition),
		errors.Is(err, domain.ErrAmountMismatch):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrOrderNotPending),
		errors.Is(err, domain.ErrContractNotActive),
		errors.Is(err, domain.ErrNotReturnable),
		errors.Is(err, domain.ErrTerminalState),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrNotAvailable):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		respondJSON(w, status, map[string]string{"error": "internal server error"})
		return
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func respondBadRequest(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

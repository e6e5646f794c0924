package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/commercekit/purchase-service/internal/analytics/application"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/orders-by-billing-zip", h.ordersByBillingZip)
	r.Get("/orders-by-shipping-zip", h.ordersByShippingZip)
	r.Get("/store-purchase-times", h.storePurchaseTimes)
	r.Get("/top-store-pickup-users", h.topStorePickupUsers)
	return r
}

// ascendingParam defaults to descending when the flag is absent or not
// literally "true".
func ascendingParam(r *http.Request) bool {
	return r.URL.Query().Get("ascending") == "true"
}

func (h *Handler) ordersByBillingZip(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.OrderCountByBillingZip(r.Context(), ascendingParam(r))
	h.respond(w, results, err)
}

func (h *Handler) ordersByShippingZip(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.OrderCountByShippingZip(r.Context(), ascendingParam(r))
	h.respond(w, results, err)
}

func (h *Handler) storePurchaseTimes(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.StorePurchaseTimes(r.Context())
	h.respond(w, results, err)
}

func (h *Handler) topStorePickupUsers(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.TopStorePickupCustomers(r.Context())
	h.respond(w, results, err)
}

func (h *Handler) respond(w http.ResponseWriter, results any, err error) {
	if err != nil {
		h.log.Error("analytics query failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(results)
}

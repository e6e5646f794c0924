package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	locdomain "github.com/commercekit/purchase-service/internal/location/domain"
	"github.com/commercekit/purchase-service/internal/purchase/application"
	"github.com/commercekit/purchase-service/internal/purchase/domain"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("purchase-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.createPurchase)
	r.Get("/{id}", h.getPurchase)
	return r
}

type addressReq struct {
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
}

func (a addressReq) address() locdomain.Address {
	return locdomain.Address{
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		ZipCode:      a.ZipCode,
	}
}

type purchaseItemReq struct {
	ProductID            int64       `json:"product_id"`
	ShipToBillingAddress bool        `json:"ship_to_billing_address"`
	ShippingLocationID   *int64      `json:"shipping_location_id"`
	ShippingLocation     *addressReq `json:"shipping_location"`
}

// directive enforces the exactly-one cardinality of the three shipping
// forms before anything reaches the orchestrator.
func (r purchaseItemReq) directive() (domain.ShippingDirective, error) {
	set := 0
	if r.ShipToBillingAddress {
		set++
	}
	if r.ShippingLocationID != nil {
		set++
	}
	if r.ShippingLocation != nil {
		set++
	}
	switch {
	case set == 0:
		return domain.ShippingDirective{}, errors.New("At least one shipping option must be specified: ship_to_billing_address, shipping_location, or shipping_location_id")
	case set > 1:
		return domain.ShippingDirective{}, errors.New("Only one shipping option can be specified: ship_to_billing_address, shipping_location, or shipping_location_id")
	case r.ShipToBillingAddress:
		return domain.ShipBilling(), nil
	case r.ShippingLocationID != nil:
		return domain.ShipExisting(*r.ShippingLocationID), nil
	default:
		return domain.ShipNew(r.ShippingLocation.address()), nil
	}
}

type createPurchaseReq struct {
	CustomerID int64             `json:"customer_id"`
	Products   []purchaseItemReq `json:"products"`
}

type purchaseResp struct {
	ID         int64 `json:"id"`
	CustomerID int64 `json:"customer_id"`
	TotalCost  int64 `json:"total_cost"`
}

func (h *Handler) createPurchase(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreatePurchase")
	defer span.End()

	var req createPurchaseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	np := domain.NewPurchase{CustomerID: req.CustomerID, Items: make([]domain.PurchaseItem, 0, len(req.Products))}
	for _, item := range req.Products {
		d, err := item.directive()
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		np.Items = append(np.Items, domain.PurchaseItem{ProductID: item.ProductID, Shipping: d})
	}

	traceparent := r.Header.Get("traceparent")
	if traceparent == "" {
		carrier := propagation.MapCarrier{}
		otel.GetTextMapPropagator().Inject(ctx, carrier)
		traceparent = carrier["traceparent"]
	}

	created, err := h.service.Create(ctx, np, traceparent)
	if err != nil {
		var nf domain.NotFoundError
		if errors.As(err, &nf) || errors.Is(err, domain.ErrNoShippingOption) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error("create purchase failed", "customer_id", req.CustomerID, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(purchaseResp{ID: created.ID, CustomerID: created.CustomerID, TotalCost: created.TotalCost})
}

func (h *Handler) getPurchase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid purchase id", http.StatusBadRequest)
		return
	}

	p, err := h.service.ByID(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "Purchase not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("get purchase failed", "purchase_id", id, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(purchaseResp{ID: p.ID, CustomerID: p.CustomerID, TotalCost: p.TotalCost})
}

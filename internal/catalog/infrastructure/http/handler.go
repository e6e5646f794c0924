package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/commercekit/purchase-service/internal/catalog/application"
	"github.com/commercekit/purchase-service/internal/catalog/domain"
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
	r.Post("/", h.createProduct)
	r.Get("/{id}", h.getByID)
	r.Get("/by-name/{name}", h.getByName)
	return r
}

type createProductReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
}

type productResp struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
}

func toResp(p domain.Product) productResp {
	return productResp{ID: p.ID, Name: p.Name, Description: p.Description, Price: p.Price}
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Description == "" || req.Price < 0 {
		http.Error(w, "name and description are required and price must be non-negative", http.StatusUnprocessableEntity)
		return
	}

	created, err := h.service.Create(r.Context(), domain.NewProduct{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		h.log.Error("create product failed", "name", req.Name, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toResp(created))
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	h.getOne(w, func() (domain.Product, error) { return h.service.ByID(r.Context(), id) })
}

func (h *Handler) getByName(w http.ResponseWriter, r *http.Request) {
	h.getOne(w, func() (domain.Product, error) { return h.service.ByName(r.Context(), chi.URLParam(r, "name")) })
}

func (h *Handler) getOne(w http.ResponseWriter, fetch func() (domain.Product, error)) {
	p, err := fetch()
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("product lookup failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toResp(p))
}

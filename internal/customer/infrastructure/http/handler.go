package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/commercekit/purchase-service/internal/customer/application"
	"github.com/commercekit/purchase-service/internal/customer/domain"
	locdomain "github.com/commercekit/purchase-service/internal/location/domain"
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
	r.Post("/", h.createCustomer)
	r.Get("/by-phone/{phone}", h.getByPhone)
	r.Get("/by-email/{email}", h.getByEmail)
	return r
}

type addressReq struct {
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
}

type createCustomerReq struct {
	Email          string     `json:"email"`
	PhoneNumber    string     `json:"phone_number"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	BillingAddress addressReq `json:"billing_address"`
}

// validate rejects malformed or missing fields before any persistence.
func (r createCustomerReq) validate() error {
	addr, err := mail.ParseAddress(r.Email)
	if err != nil || addr.Address != r.Email {
		return errors.New("invalid email address")
	}
	if r.PhoneNumber == "" || r.FirstName == "" || r.LastName == "" {
		return errors.New("phone_number, first_name and last_name are required")
	}
	if r.BillingAddress.AddressLine1 == "" || r.BillingAddress.City == "" || r.BillingAddress.State == "" || r.BillingAddress.ZipCode == "" {
		return errors.New("billing_address requires address_line_1, city, state and zip_code")
	}
	return nil
}

type customerResp struct {
	ID                int64  `json:"id"`
	Email             string `json:"email"`
	PhoneNumber       string `json:"phone_number"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	BillingLocationID int64  `json:"billing_location_id"`
}

func toResp(c domain.Customer) customerResp {
	return customerResp{
		ID:                c.ID,
		Email:             c.Email,
		PhoneNumber:       c.PhoneNumber,
		FirstName:         c.FirstName,
		LastName:          c.LastName,
		BillingLocationID: c.BillingLocationID,
	}
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	created, err := h.service.Register(r.Context(), domain.NewCustomer{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		BillingAddress: locdomain.Address{
			AddressLine1: req.BillingAddress.AddressLine1,
			AddressLine2: req.BillingAddress.AddressLine2,
			City:         req.BillingAddress.City,
			State:        req.BillingAddress.State,
			ZipCode:      req.BillingAddress.ZipCode,
		},
	})
	if err != nil {
		h.log.Error("register customer failed", "email", req.Email, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toResp(created))
}

func (h *Handler) getByPhone(w http.ResponseWriter, r *http.Request) {
	h.getOne(w, r, func() (domain.Customer, error) {
		return h.service.ByPhone(r.Context(), chi.URLParam(r, "phone"))
	})
}

func (h *Handler) getByEmail(w http.ResponseWriter, r *http.Request) {
	h.getOne(w, r, func() (domain.Customer, error) {
		return h.service.ByEmail(r.Context(), chi.URLParam(r, "email"))
	})
}

func (h *Handler) getOne(w http.ResponseWriter, r *http.Request, fetch func() (domain.Customer, error)) {
	c, err := fetch()
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("customer lookup failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toResp(c))
}

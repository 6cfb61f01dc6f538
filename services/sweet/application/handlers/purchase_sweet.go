package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
	sweetdomain "github.com/ghuser/sweetshop/services/sweet/domain"
)

// StockRequest is the request body for purchase and restock. Quantity is
// optional and defaults to 1; an explicit zero or negative value is rejected.
type StockRequest struct {
	Quantity *int `json:"quantity" example:"2"`
} // @name StockRequest

// parseStockRequest decodes the quantity from the request body, defaulting
// to 1 when the body is empty or the field is absent.
func parseStockRequest(r *http.Request) (int, error) {
	var req StockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return 1, nil // empty body → default quantity
		}
		return 0, err
	}
	if req.Quantity == nil {
		return 1, nil
	}
	return *req.Quantity, nil
}

// writeStockError maps stock operation failures to the client-facing
// responses: the quantity and stock violations carry a human-readable
// detail message; everything else goes through the standard error mapping.
func writeStockError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sweetdomain.ErrInvalidQuantity):
		httpx.JSON(w, http.StatusBadRequest, DetailResponse{Detail: "Quantity must be positive."})
	case errors.Is(err, sweetdomain.ErrInsufficientStock):
		httpx.JSON(w, http.StatusBadRequest, DetailResponse{Detail: "Insufficient stock."})
	default:
		errhttp.WriteError(w, err)
	}
}

// PurchaseSweetHandler handles POST /sweets/{id}/purchase requests.
type PurchaseSweetHandler struct {
	svc *appsvcs.Services
}

// NewPurchaseSweetHandler returns a PurchaseSweetHandler backed by the given services.
func NewPurchaseSweetHandler(svc *appsvcs.Services) *PurchaseSweetHandler {
	return &PurchaseSweetHandler{svc: svc}
}

// Execute decrements the sweet's stock by the requested quantity.
//
//	@Summary		Purchase sweet
//	@Description	Decrements quantity on hand; never drives it below zero
//	@Tags			sweets
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Sweet ID"
//	@Param			request	body		StockRequest	false	"Quantity to purchase (default 1)"
//	@Success		200		{object}	SweetResponse
//	@Failure		400		{object}	DetailResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/sweets/{id}/purchase [post]
func (h *PurchaseSweetHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid sweet id")
		return
	}

	qty, err := parseStockRequest(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sweet, err := h.svc.Sweet.Purchase(r.Context(), id, qty)
	if err != nil {
		writeStockError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toSweetResponse(sweet))
}

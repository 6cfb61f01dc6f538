package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/sweetshop/pkg/httpx"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
)

// RestockSweetHandler handles POST /sweets/{id}/restock requests.
type RestockSweetHandler struct {
	svc *appsvcs.Services
}

// NewRestockSweetHandler returns a RestockSweetHandler backed by the given services.
func NewRestockSweetHandler(svc *appsvcs.Services) *RestockSweetHandler {
	return &RestockSweetHandler{svc: svc}
}

// Execute increments the sweet's stock by the requested quantity.
//
//	@Summary		Restock sweet
//	@Description	Increments quantity on hand; no upper bound
//	@Tags			sweets
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Sweet ID"
//	@Param			request	body		StockRequest	false	"Quantity to restock (default 1)"
//	@Success		200		{object}	SweetResponse
//	@Failure		400		{object}	DetailResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/sweets/{id}/restock [post]
func (h *RestockSweetHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	sweet, err := h.svc.Sweet.Restock(r.Context(), id, qty)
	if err != nil {
		writeStockError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toSweetResponse(sweet))
}

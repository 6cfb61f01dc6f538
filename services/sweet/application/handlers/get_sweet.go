package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
)

// GetSweetHandler handles GET /sweets/{id} requests.
type GetSweetHandler struct {
	svc *appsvcs.Services
}

// NewGetSweetHandler returns a GetSweetHandler backed by the given services.
func NewGetSweetHandler(svc *appsvcs.Services) *GetSweetHandler {
	return &GetSweetHandler{svc: svc}
}

// Execute returns a single sweet by ID.
//
//	@Summary		Get sweet
//	@Tags			sweets
//	@Produce		json
//	@Param			id	path		string	true	"Sweet ID"
//	@Success		200	{object}	SweetResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/sweets/{id} [get]
func (h *GetSweetHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid sweet id")
		return
	}

	sweet, err := h.svc.Sweet.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toSweetResponse(sweet))
}

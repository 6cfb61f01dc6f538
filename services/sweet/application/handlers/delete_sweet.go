package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
)

// DeleteSweetHandler handles DELETE /sweets/{id} requests.
type DeleteSweetHandler struct {
	svc *appsvcs.Services
}

// NewDeleteSweetHandler returns a DeleteSweetHandler backed by the given services.
func NewDeleteSweetHandler(svc *appsvcs.Services) *DeleteSweetHandler {
	return &DeleteSweetHandler{svc: svc}
}

// Execute deletes a sweet.
//
//	@Summary		Delete sweet
//	@Tags			sweets
//	@Param			id	path	string	true	"Sweet ID"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Router			/sweets/{id} [delete]
func (h *DeleteSweetHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid sweet id")
		return
	}

	if err := h.svc.Sweet.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

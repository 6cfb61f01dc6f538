package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/sweetshop/pkg/validator"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
)

// UpdateSweetRequest is the request body for PUT /sweets/{id}.
type UpdateSweetRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255" example:"Ladoo"`
	Category    string  `json:"category" validate:"required,min=1,max=100" example:"Indian"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	Price       float64 `json:"price" validate:"gte=0" example:"12.00"`
	Quantity    int     `json:"quantity" validate:"gte=0" example:"8"`
} // @name UpdateSweetRequest

// PutSweetHandler handles PUT /sweets/{id} requests.
type PutSweetHandler struct {
	svc *appsvcs.Services
}

// NewPutSweetHandler returns a PutSweetHandler backed by the given services.
func NewPutSweetHandler(svc *appsvcs.Services) *PutSweetHandler {
	return &PutSweetHandler{svc: svc}
}

// Execute replaces a sweet's fields.
//
//	@Summary		Update sweet
//	@Tags			sweets
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Sweet ID"
//	@Param			request	body		UpdateSweetRequest	true	"Sweet update request"
//	@Success		200		{object}	SweetResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/sweets/{id} [put]
func (h *PutSweetHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid sweet id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateSweetRequest](w, r)
	if !ok {
		return
	}

	sweet, err := h.svc.Sweet.Update(r.Context(), id, appsvcs.UpdateSweetInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toSweetResponse(sweet))
}

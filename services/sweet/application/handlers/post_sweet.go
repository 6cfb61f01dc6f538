package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/sweetshop/pkg/validator"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
	"github.com/ghuser/sweetshop/services/sweet/domain/models"
)

// CreateSweetRequest is the request body for POST /sweets.
type CreateSweetRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255" example:"Ladoo"`
	Category    string  `json:"category" validate:"required,min=1,max=100" example:"Indian"`
	Description string  `json:"description" validate:"omitempty,max=2000" example:"Gram flour balls in ghee"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url" example:"https://cdn.example.com/ladoo.jpg"`
	Price       float64 `json:"price" validate:"gte=0" example:"10.50"`
	Quantity    int     `json:"quantity" validate:"gte=0" example:"5"`
} // @name CreateSweetRequest

// SweetResponse is the serialized Sweet returned by all sweet endpoints.
type SweetResponse struct {
	ID          uuid.UUID `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	Name        string    `json:"name"        example:"Ladoo"`
	Category    string    `json:"category"    example:"Indian"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Price       float64   `json:"price"       example:"10.50"`
	Quantity    int       `json:"quantity"    example:"5"`
	CreatedAt   time.Time `json:"created_at"  example:"2024-01-15T10:30:00Z"`
} // @name SweetResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"sweet not found"`
} // @name ErrorResponse

// DetailResponse carries the human-readable message for stock operation failures.
type DetailResponse struct {
	Detail string `json:"detail" example:"Insufficient stock."`
} // @name DetailResponse

func toSweetResponse(sweet *models.Sweet) SweetResponse {
	return SweetResponse{
		ID:          sweet.ID,
		Name:        sweet.Name.String(),
		Category:    sweet.Category,
		Description: sweet.Description,
		ImageURL:    sweet.ImageURL,
		Price:       sweet.Price,
		Quantity:    sweet.Quantity,
		CreatedAt:   sweet.CreatedAt,
	}
}

// PostSweetHandler handles POST /sweets requests.
type PostSweetHandler struct {
	svc *appsvcs.Services
}

// NewPostSweetHandler returns a PostSweetHandler backed by the given services.
func NewPostSweetHandler(svc *appsvcs.Services) *PostSweetHandler {
	return &PostSweetHandler{svc: svc}
}

// Execute creates a new sweet.
//
//	@Summary		Create sweet
//	@Description	Creates a new sweet inventory record
//	@Tags			sweets
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateSweetRequest	true	"Sweet creation request"
//	@Success		201		{object}	SweetResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/sweets [post]
func (h *PostSweetHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateSweetRequest](w, r)
	if !ok {
		return
	}

	sweet, err := h.svc.Sweet.Create(r.Context(), appsvcs.CreateSweetInput{
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

	httpx.JSON(w, http.StatusCreated, toSweetResponse(sweet))
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
	"github.com/ghuser/sweetshop/services/sweet/domain/repositories"
)

// ListSweetsResponse is the paginated payload for GET /sweets.
type ListSweetsResponse struct {
	Sweets []SweetResponse `json:"sweets"`
	Total  int             `json:"total" example:"42"`
} // @name ListSweetsResponse

// ListSweetsHandler handles GET /sweets requests.
type ListSweetsHandler struct {
	svc *appsvcs.Services
}

// NewListSweetsHandler returns a ListSweetsHandler backed by the given services.
func NewListSweetsHandler(svc *appsvcs.Services) *ListSweetsHandler {
	return &ListSweetsHandler{svc: svc}
}

// Execute returns sweets matching the query filters, newest first.
//
//	@Summary		List sweets
//	@Tags			sweets
//	@Produce		json
//	@Param			category	query		string	false	"Exact category"
//	@Param			minPrice	query		number	false	"Minimum price"
//	@Param			maxPrice	query		number	false	"Maximum price"
//	@Param			search		query		string	false	"Name substring"
//	@Param			limit		query		int		false	"Page size (default 50)"
//	@Param			offset		query		int		false	"Page offset"
//	@Success		200			{object}	ListSweetsResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/sweets [get]
func (h *ListSweetsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	sweets, total, err := h.svc.Sweet.List(r.Context(), filter)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	out := make([]SweetResponse, len(sweets))
	for i, sweet := range sweets {
		out[i] = toSweetResponse(sweet)
	}
	httpx.JSON(w, http.StatusOK, ListSweetsResponse{Sweets: out, Total: total})
}

func parseFilter(r *http.Request) (repositories.SweetFilter, error) {
	q := r.URL.Query()
	filter := repositories.SweetFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}

	if v := q.Get("minPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, errInvalidQueryParam("minPrice")
		}
		filter.MinPrice = &p
	}
	if v := q.Get("maxPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, errInvalidQueryParam("maxPrice")
		}
		filter.MaxPrice = &p
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, errInvalidQueryParam("limit")
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, errInvalidQueryParam("offset")
		}
		filter.Offset = n
	}
	return filter, nil
}

type queryParamError string

func (e queryParamError) Error() string { return "invalid query parameter: " + string(e) }

func errInvalidQueryParam(name string) error { return queryParamError(name) }

// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/sweetshop/pkg/httpx"
	sweetdomain "github.com/ghuser/sweetshop/services/sweet/domain"
	userdomain "github.com/ghuser/sweetshop/services/user/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, sweetdomain.ErrSweetNotFound),
		errors.Is(err, userdomain.ErrUserNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, sweetdomain.ErrSweetAlreadyExists),
		errors.Is(err, userdomain.ErrUsernameTaken):
		return http.StatusConflict // 409
	case errors.Is(err, sweetdomain.ErrInvalidQuantity),
		errors.Is(err, sweetdomain.ErrInsufficientStock):
		return http.StatusBadRequest // 400
	case errors.Is(err, sweetdomain.ErrInvalidSweetName),
		errors.Is(err, sweetdomain.ErrInvalidSweet):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, userdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}

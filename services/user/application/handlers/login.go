package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/sweetshop/pkg/auth"
	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	"github.com/ghuser/sweetshop/pkg/logger"
	pkgvalidator "github.com/ghuser/sweetshop/pkg/validator"
	appsvcs "github.com/ghuser/sweetshop/services/user/application/services"
)

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required" example:"u1"`
	Password string `json:"password" validate:"required" example:"pass1234"`
} // @name LoginRequest

// LoginResponse carries the access token and user payload.
// A session cookie is also set on the response for browser clients.
type LoginResponse struct {
	Access string       `json:"access"`
	User   UserResponse `json:"user"`
} // @name LoginResponse

// LoginHandler handles POST /auth/login requests.
type LoginHandler struct {
	svc   *appsvcs.Services
	store sessions.Store
	log   logger.Logger
}

// NewLoginHandler returns a LoginHandler backed by the given services and session store.
func NewLoginHandler(svc *appsvcs.Services, store sessions.Store, log logger.Logger) *LoginHandler {
	return &LoginHandler{svc: svc, store: store, log: log}
}

// Execute verifies credentials, establishes a session, and returns an access token.
//
//	@Summary		Log in
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Login request"
//	@Success		200		{object}	LoginResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/auth/login [post]
func (h *LoginHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[LoginRequest](w, r)
	if !ok {
		return
	}

	user, token, err := h.svc.User.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	if h.store != nil {
		if err := auth.EstablishSession(w, r, h.store, user.ID); err != nil {
			// Token auth still works without the cookie; log and continue.
			h.log.WarnContext(r.Context(), "failed to establish session", "error", err)
		}
	}

	httpx.JSON(w, http.StatusOK, LoginResponse{
		Access: token,
		User:   toUserResponse(user),
	})
}

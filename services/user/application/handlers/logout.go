package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/sweetshop/pkg/auth"
	"github.com/ghuser/sweetshop/pkg/httpx"
)

// LogoutHandler handles POST /auth/logout requests.
type LogoutHandler struct {
	store sessions.Store
}

// NewLogoutHandler returns a LogoutHandler using the given session store.
func NewLogoutHandler(store sessions.Store) *LogoutHandler {
	return &LogoutHandler{store: store}
}

// Execute expires the caller's session cookie. Access tokens are short-lived
// and simply age out; there is no server-side token revocation list.
//
//	@Summary		Log out
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/auth/logout [post]
func (h *LogoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		_ = auth.ClearSession(w, r, h.store)
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/sweetshop/pkg/httpx"
	"github.com/ghuser/sweetshop/pkg/logger"
)

const sessionName = "sweetshop_session"
const sessionUserIDKey = "user_id"

// RequireAuth is a chi middleware that enforces authentication. It accepts
// either the session cookie or an Authorization: Bearer access token, in
// that order, and injects the authenticated user ID into the request context.
// Returns 401 Unauthorized when neither credential is present and valid.
//
// After this middleware, handlers can safely call auth.UserIDFromCtx(r.Context()).
func RequireAuth(store sessions.Store, tokens *TokenIssuer, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := userIDFromSession(r, store, log); ok {
				next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
				return
			}

			if userID, ok := userIDFromBearer(r, tokens, log); ok {
				next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
				return
			}

			httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		})
	}
}

func userIDFromSession(r *http.Request, store sessions.Store, log logger.Logger) (uuid.UUID, bool) {
	session, err := store.Get(r, sessionName)
	if err != nil {
		log.WarnContext(r.Context(), "invalid session cookie", "error", err)
		return uuid.Nil, false
	}

	idStr, ok := session.Values[sessionUserIDKey].(string)
	if !ok || idStr == "" {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(idStr)
	if err != nil {
		log.WarnContext(r.Context(), "invalid user_id in session", "user_id", idStr, "error", err)
		return uuid.Nil, false
	}
	return userID, true
}

func userIDFromBearer(r *http.Request, tokens *TokenIssuer, log logger.Logger) (uuid.UUID, bool) {
	if tokens == nil {
		return uuid.Nil, false
	}
	header := r.Header.Get("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return uuid.Nil, false
	}
	userID, err := tokens.Verify(raw)
	if err != nil {
		log.WarnContext(r.Context(), "invalid bearer token", "error", err)
		return uuid.Nil, false
	}
	return userID, true
}

// EstablishSession writes a session cookie carrying the user ID.
// Called by the login handler after credentials are verified.
func EstablishSession(w http.ResponseWriter, r *http.Request, store sessions.Store, userID uuid.UUID) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		// A tampered cookie yields an error plus a fresh session; use the fresh one.
		session, _ = store.New(r, sessionName)
	}
	session.Values[sessionUserIDKey] = userID.String()
	return session.Save(r, w)
}

// ClearSession expires the session cookie and deletes the server-side session.
func ClearSession(w http.ResponseWriter, r *http.Request, store sessions.Store) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return nil
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/sweetshop/pkg/app"
	"github.com/ghuser/sweetshop/pkg/auth"
	"github.com/ghuser/sweetshop/pkg/config"
	"github.com/ghuser/sweetshop/pkg/logger"
	"github.com/ghuser/sweetshop/services/user/application/api"
	appsvcs "github.com/ghuser/sweetshop/services/user/application/services"
	userdomain "github.com/ghuser/sweetshop/services/user/domain"
	"github.com/ghuser/sweetshop/services/user/domain/models"
)

type memUserRepo struct {
	users map[string]*models.User
}

func (m *memUserRepo) Save(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.Username]; ok {
		return userdomain.ErrUsernameTaken
	}
	cp := *user
	m.users[user.Username] = &cp
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			cp := *user
			return &cp, nil
		}
	}
	return nil, userdomain.ErrUserNotFound
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func newTestRouter() (chi.Router, *auth.TokenIssuer) {
	tokens := auth.NewTokenIssuer([]byte("test-jwt-secret-must-be-32-bytes"), time.Minute, "sweetshop-test")
	svcs := &appsvcs.Services{
		User: appsvcs.NewUserService(&memUserRepo{users: make(map[string]*models.User)}, tokens),
	}
	a := &app.Application{
		Logger: logger.New(&config.Config{LogLevel: "error"}),
		SessionStore: sessions.NewCookieStore(
			[]byte("test-auth-key-must-be-32-bytes!!"),
			[]byte("test-enc-key-must-be-32-bytes!!!"),
		),
	}
	r := chi.NewRouter()
	api.RegisterAuthRoutes(r, svcs, a)
	return r, tokens
}

func doJSON(t *testing.T, router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestAuthRoutes_RegisterLoginFlow(t *testing.T) {
	router, tokens := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/auth/register", map[string]any{
		"username": "u1",
		"email":    "u1@example.com",
		"password": "pass1234",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var registered struct {
		ID       uuid.UUID `json:"id"`
		Username string    `json:"username"`
		Role     string    `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &registered); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if registered.Role != models.RoleCustomer {
		t.Fatalf("expected default role customer, got %q", registered.Role)
	}

	w = doJSON(t, router, http.MethodPost, "/auth/login", map[string]any{
		"username": "u1",
		"password": "pass1234",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var login struct {
		Access string `json:"access"`
		User   struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if login.User.ID != registered.ID {
		t.Fatalf("login user mismatch: %v vs %v", login.User.ID, registered.ID)
	}
	userID, err := tokens.Verify(login.Access)
	if err != nil {
		t.Fatalf("access token must verify: %v", err)
	}
	if userID != registered.ID {
		t.Fatalf("token subject mismatch: %v vs %v", userID, registered.ID)
	}

	// Login must also set the session cookie for browser clients.
	hasSession := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "sweetshop_session" {
			hasSession = true
		}
	}
	if !hasSession {
		t.Fatal("expected session cookie on login response")
	}
}

func TestAuthRoutes_RegisterShortUsername(t *testing.T) {
	router, _ := newTestRouter()

	// Usernames have a 150-char cap but no minimum beyond being present.
	w := doJSON(t, router, http.MethodPost, "/auth/register", map[string]any{
		"username": "a",
		"email":    "a@example.com",
		"password": "pass1234",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthRoutes_Failures(t *testing.T) {
	router, _ := newTestRouter()

	doJSON(t, router, http.MethodPost, "/auth/register", map[string]any{
		"username": "u1", "email": "u1@example.com", "password": "pass1234",
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/auth/register", map[string]any{
			"username": "u1", "email": "other@example.com", "password": "pass1234",
		})
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("short password rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/auth/register", map[string]any{
			"username": "u2", "email": "u2@example.com", "password": "short",
		})
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("wrong password unauthorized", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/auth/login", map[string]any{
			"username": "u1", "password": "wrongpass",
		})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown user unauthorized", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/auth/login", map[string]any{
			"username": "ghost", "password": "pass1234",
		})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAuthRoutes_Logout(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/auth/logout", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/auth"
	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/middleware"
	"hrportal/backend/internal/repository/postgres/user"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memRevoker struct {
	mu  sync.Mutex
	ids map[string]bool
}

func (m *memRevoker) Revoke(_ context.Context, id string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[id] = true
	return nil
}

func (m *memRevoker) Revoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ids[id], nil
}

type fakeUser struct{}

func (fakeUser) SignIn(_ context.Context, req user.SignInRequest) (entity.User, error) {
	if req.Username != "john" || req.Password != "pass123" {
		return entity.User{}, web.NewRequestError(user.ErrInvalidCredentials, http.StatusUnauthorized)
	}
	return entity.User{Username: "john", Role: entity.RoleEmployee}, nil
}

func (fakeUser) ResetPassword(context.Context, user.ResetPasswordRequest) error {
	return nil
}

func post(app *web.App, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestSignInAndSignOut(t *testing.T) {
	tokens, err := auth.New(auth.Config{Key: "test-key"}, &memRevoker{ids: map[string]bool{}})
	if err != nil {
		t.Fatalf("new auth: %v", err)
	}
	uc := NewController(fakeUser{}, tokens)

	app := web.NewApp()
	app.Post("/api/v1/sign-in", uc.SignIn)
	app.Post("/api/v1/sign-out", uc.SignOut, middleware.Authenticate(tokens))
	app.Post("/api/v1/password/reset", uc.ResetPassword, middleware.Authenticate(tokens, auth.RoleAdmin))

	if rec := post(app, "/api/v1/sign-in", `{"username":"john","password":"wrong"}`, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a wrong password, got %d", rec.Code)
	}

	rec := post(app, "/api/v1/sign-in", `{"username":"john","password":"pass123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data user.TokenResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.AccessToken == "" || body.Data.Role != entity.RoleEmployee {
		t.Fatalf("unexpected token response %+v", body.Data)
	}

	access := body.Data.AccessToken
	if rec := post(app, "/api/v1/password/reset", `{"username":"rahul","password":"x"}`, access); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for an employee resetting passwords, got %d", rec.Code)
	}
	if rec := post(app, "/api/v1/sign-out", `{}`, access); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on sign-out, got %d", rec.Code)
	}
	if rec := post(app, "/api/v1/sign-out", `{}`, access); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected revoked token to be rejected, got %d", rec.Code)
	}
}

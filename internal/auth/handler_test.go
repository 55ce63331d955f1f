package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskvault/taskvault/internal/platform/httpx"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(t *testing.T, repo Repository) http.Handler {
	t.Helper()
	tokens := NewTokenManager([]byte("test-secret"))
	handler := NewHandler(discardLogger(), NewService(repo), tokens, 20*time.Minute)
	r := chi.NewRouter()
	r.Route("/auth", handler.MountRoutes)
	return r
}

func TestRegisterCreatesUser(t *testing.T) {
	repo := newStubRepo()
	router := newTestHandler(t, repo)

	payload := `{
		"username": "newuser",
		"email": "newuser@example.test",
		"first_name": "New",
		"last_name": "User",
		"password": "ChangeMe123!",
		"phone_number": "123456789"
	}`
	req := httptest.NewRequest(http.MethodPost, "/auth/", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", res.Code, res.Body.String())
	}
	if repo.created == nil {
		t.Fatal("expected user to be persisted")
	}
	if repo.created.Role != RoleUser || !repo.created.IsActive {
		t.Fatalf("unexpected defaults %+v", repo.created)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("ChangeMe123!")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegisterInvalidPayload(t *testing.T) {
	repo := newStubRepo()
	router := newTestHandler(t, repo)

	payload := `{
		"username": "x",
		"email": "not-an-email",
		"first_name": "New",
		"last_name": "User",
		"password": "short"
	}`
	req := httptest.NewRequest(http.MethodPost, "/auth/", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.Code)
	}
	if repo.created != nil {
		t.Fatal("invalid payload must not be persisted")
	}
}

func TestTokenReturnsBearer(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Correct123!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := newStubRepo(&User{ID: 1, Username: "u1", PasswordHash: string(hash), Role: RoleUser, IsActive: true})
	router := newTestHandler(t, repo)

	form := url.Values{"username": {"u1"}, "password": {"Correct123!"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.TokenType != "bearer" {
		t.Fatalf("expected token_type bearer, got %q", body.TokenType)
	}
	if len(body.AccessToken) < 10 {
		t.Fatalf("suspiciously short token %q", body.AccessToken)
	}

	identity, err := NewTokenManager([]byte("test-secret")).Authenticate(body.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if identity.Username != "u1" || identity.UserID != 1 || identity.Role != RoleUser {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestTokenWrongPasswordAndUnknownUserMatch(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Correct123!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := newStubRepo(&User{ID: 1, Username: "u1", PasswordHash: string(hash), Role: RoleUser, IsActive: true})
	router := newTestHandler(t, repo)

	post := func(username, password string) *httptest.ResponseRecorder {
		form := url.Values{"username": {username}, "password": {password}}
		req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)
		return res
	}

	wrongPassword := post("u1", "Wrong123!")
	unknownUser := post("ghost", "Wrong123!")

	for _, res := range []*httptest.ResponseRecorder{wrongPassword, unknownUser} {
		if res.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", res.Code)
		}
	}
	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Fatalf("responses must be identical: %q vs %q", wrongPassword.Body.String(), unknownUser.Body.String())
	}
	var body httpx.ErrorBody
	if err := json.NewDecoder(wrongPassword.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Detail.Code != httpx.CodeAuthInvalid {
		t.Fatalf("expected AUTH_INVALID, got %q", body.Detail.Code)
	}
}

func TestTokenMissingFormFields(t *testing.T) {
	repo := newStubRepo()
	router := newTestHandler(t, repo)

	form := url.Values{"username": {"u1"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.Code)
	}
}

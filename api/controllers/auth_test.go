package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corneye/corneye-backend/api/middleware"
	"github.com/corneye/corneye-backend/internal/auth"
	"github.com/corneye/corneye-backend/internal/farmers"
	pkgerrors "github.com/corneye/corneye-backend/pkg/errors"
	"github.com/google/uuid"
)

type stubAuthService struct {
	loginResp      *auth.LoginResponse
	adminLoginResp *auth.AdminLoginResponse
	err            error

	loggedOut []uuid.UUID
}

func (s *stubAuthService) Login(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.loginResp, s.err
}

func (s *stubAuthService) AdminLogin(context.Context, auth.LoginRequest) (*auth.AdminLoginResponse, error) {
	return s.adminLoginResp, s.err
}

func (s *stubAuthService) Logout(_ context.Context, accountID uuid.UUID) error {
	s.loggedOut = append(s.loggedOut, accountID)
	return s.err
}

type stubRegisterService struct {
	resp *auth.RegisterResponse
	err  error
}

func (s stubRegisterService) Register(context.Context, auth.RegisterRequest) (*auth.RegisterResponse, error) {
	return s.resp, s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	farmerID := uuid.New()
	svc := &stubAuthService{loginResp: &auth.LoginResponse{
		AccessToken: "access-token",
		Farmer:      &farmers.FarmerDTO{ID: farmerID, FullName: "Juan Dela Cruz", Email: "farmer@test.com"},
		Session:     auth.SessionPrefs{UserID: farmerID, FullName: "Juan Dela Cruz", Email: "farmer@test.com"},
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"farmer@test.com","password":"secret1"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	AuthLogin(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-CE-Token"); got != "access-token" {
		t.Fatalf("expected token header got %q", got)
	}

	var envelope struct {
		Data struct {
			AccessToken string             `json:"access_token"`
			Farmer      *farmers.FarmerDTO `json:"farmer"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Farmer == nil || envelope.Data.Farmer.FullName != "Juan Dela Cruz" {
		t.Fatalf("unexpected farmer %+v", envelope.Data.Farmer)
	}
}

func TestAuthLoginRejectsMalformedBody(t *testing.T) {
	svc := &stubAuthService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"not-an-email"}`)))
	resp := httptest.NewRecorder()

	AuthLogin(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginPropagatesUnauthorized(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"farmer@test.com","password":"wrong"}`)))
	resp := httptest.NewRecorder()

	AuthLogin(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRegisterCreated(t *testing.T) {
	svc := stubRegisterService{resp: &auth.RegisterResponse{
		Farmer: &farmers.FarmerDTO{ID: uuid.New(), FullName: "Juan Dela Cruz", Email: "farmer@test.com"},
	}}

	body := `{"fullname":"Juan Dela Cruz","email":"farmer@test.com","phone":"09171234567","password":"secret1","confirm_password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte(body)))
	resp := httptest.NewRecorder()

	AuthRegister(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}

func TestAuthRegisterRejectsPasswordMismatch(t *testing.T) {
	svc := stubRegisterService{}

	body := `{"fullname":"Juan","email":"farmer@test.com","phone":"09171234567","password":"secret1","confirm_password":"secret2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte(body)))
	resp := httptest.NewRecorder()

	AuthRegister(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLogoutUsesContextAccount(t *testing.T) {
	svc := &stubAuthService{}
	id := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = req.WithContext(middleware.WithAccountID(req.Context(), id.String()))
	resp := httptest.NewRecorder()

	AuthLogout(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != id {
		t.Fatalf("expected logout for %s got %v", id, svc.loggedOut)
	}
}

func TestAuthLogoutWithoutContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp := httptest.NewRecorder()

	AuthLogout(&stubAuthService{}, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

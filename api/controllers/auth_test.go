package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/quoteline/rfqtracker-backend/api/middleware"
	"github.com/quoteline/rfqtracker-backend/internal/auth"
	"github.com/quoteline/rfqtracker-backend/internal/rfqs"
	"github.com/quoteline/rfqtracker-backend/internal/users"
	"github.com/quoteline/rfqtracker-backend/pkg/enums"
	pkgerrors "github.com/quoteline/rfqtracker-backend/pkg/errors"
)

type stubAuthService struct {
	user  *users.UserDTO
	login *auth.LoginResponse
	pair  *auth.TokenPair
	err   error

	loggedOutID string
}

func (s *stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.login, s.err
}

func (s *stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.TokenPair, error) {
	return s.pair, s.err
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	s.loggedOutID = accessID
	return s.err
}

func (s *stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return s.user, s.err
}

func TestAuthRegisterSuccess(t *testing.T) {
	user := &users.UserDTO{
		ID:    uuid.New(),
		Email: "dana@quoteline.test",
		Name:  "Dana",
		Role:  enums.MemberRoleSales,
	}
	handler := AuthRegister(&stubAuthService{user: user}, nil)

	body := `{"name":"Dana","email":"dana@quoteline.test","password":"Secret#123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			User *users.UserDTO `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.User == nil || envelope.Data.User.Email != user.Email {
		t.Fatalf("expected user in payload got %+v", envelope.Data.User)
	}
}

func TestAuthRegisterInvalidPayload(t *testing.T) {
	handler := AuthRegister(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte(`{"password":"Secret#123"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginReturnsTokenPair(t *testing.T) {
	user := &users.UserDTO{ID: uuid.New(), Email: "dana@quoteline.test", Name: "Dana"}
	handler := AuthLogin(&stubAuthService{login: &auth.LoginResponse{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User:         user,
	}}, nil)

	body := `{"email":"dana@quoteline.test","password":"Secret#123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			AccessToken  string         `json:"access_token"`
			RefreshToken string         `json:"refresh_token"`
			User         *users.UserDTO `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access-token" || envelope.Data.RefreshToken != "refresh-token" {
		t.Fatalf("expected token pair got %+v", envelope.Data)
	}
	if envelope.Data.User == nil || envelope.Data.User.Email != user.Email {
		t.Fatalf("expected user in payload got %+v", envelope.Data.User)
	}
}

func TestAuthLoginMapsBadCredentials(t *testing.T) {
	handler := AuthLogin(&stubAuthService{
		err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"),
	}, nil)

	body := `{"email":"dana@quoteline.test","password":"wrong-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRefreshRotatesTokens(t *testing.T) {
	handler := AuthRefresh(&stubAuthService{pair: &auth.TokenPair{
		AccessToken:  "next-access",
		RefreshToken: "next-refresh",
	}}, nil)

	body := `{"access_token":"stale-access","refresh_token":"current-refresh"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data auth.TokenPair `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "next-access" {
		t.Fatalf("expected rotated access token got %+v", envelope.Data)
	}
}

func TestAuthLogoutRevokesCurrentSession(t *testing.T) {
	svc := &stubAuthService{}
	handler := AuthLogout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = req.WithContext(middleware.WithAccessID(req.Context(), "session-jti"))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.loggedOutID != "session-jti" {
		t.Fatalf("expected logout to revoke session-jti got %q", svc.loggedOutID)
	}
}

func TestAuthMeReturnsProfile(t *testing.T) {
	actor := rfqs.Actor{ID: uuid.New(), Name: "Dana", Role: enums.MemberRoleSales}
	user := &users.UserDTO{ID: actor.ID, Email: "dana@quoteline.test", Name: "Dana"}
	handler := AuthMe(&stubAuthService{user: user}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			User *users.UserDTO `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.User == nil || envelope.Data.User.ID != actor.ID {
		t.Fatalf("expected profile for %s got %+v", actor.ID, envelope.Data.User)
	}
}

func TestAuthMeWithoutIdentity(t *testing.T) {
	handler := AuthMe(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

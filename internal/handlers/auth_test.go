package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/internal/services"
)

func registerBody(mutate func(m map[string]any)) string {
	m := map[string]any{
		"firstName":       "Ada",
		"lastName":        "Lovelace",
		"age":             36,
		"email":           "ada@example.com",
		"password":        "Secret1!",
		"confirmPassword": "Secret1!",
	}
	if mutate != nil {
		mutate(m)
	}
	b, _ := json.Marshal(m)
	return string(b)
}

func TestRegister(t *testing.T) {
	userID := uuid.New()
	auth := &mockAuthService{
		RegisterFunc: func(ctx context.Context, params services.RegisterParams) (*services.AuthResult, error) {
			if params.Email != "ada@example.com" {
				t.Errorf("email not normalized: %q", params.Email)
			}
			return &services.AuthResult{
				Tokens: &models.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
				User:   &models.User{ID: userID, Email: params.Email},
			}, nil
		},
	}
	handler := NewAuthHandler(auth)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(registerBody(func(m map[string]any) {
			m["email"] = "  Ada@Example.com "
		})))
	rr := httptest.NewRecorder()
	handler.Register(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var response RegisterResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response.AccessToken != "access" || response.RefreshToken != "refresh" {
		t.Errorf("tokens not returned: %+v", response)
	}
	if response.User == nil || response.User.ID != userID {
		t.Errorf("user not returned: %+v", response.User)
	}
	if strings.Contains(rr.Body.String(), "password") {
		t.Error("response must not carry password material")
	}
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "invalid body",
			body:    "{not json",
			message: "Invalid request body",
		},
		{
			name:    "invalid email",
			body:    registerBody(func(m map[string]any) { m["email"] = "not-an-email" }),
			message: "Invalid email address",
		},
		{
			name:    "first name too short",
			body:    registerBody(func(m map[string]any) { m["firstName"] = "A" }),
			message: "First name must be between 2 and 30 characters",
		},
		{
			name:    "last name too long",
			body:    registerBody(func(m map[string]any) { m["lastName"] = strings.Repeat("x", 31) }),
			message: "Last name must be between 2 and 30 characters",
		},
		{
			name:    "age not positive",
			body:    registerBody(func(m map[string]any) { m["age"] = 0 }),
			message: "Age must be a positive number",
		},
		{
			name:    "password too short",
			body:    registerBody(func(m map[string]any) { m["password"] = "S1!"; m["confirmPassword"] = "S1!" }),
			message: "Password must be at least 8 characters",
		},
		{
			name:    "password missing character classes",
			body:    registerBody(func(m map[string]any) { m["password"] = "letters0nly0"; m["confirmPassword"] = "letters0nly0" }),
			message: "Password must contain a letter, a digit and a special character",
		},
		{
			name:    "passwords do not match",
			body:    registerBody(func(m map[string]any) { m["confirmPassword"] = "Other1!x" }),
			message: "Passwords do not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&mockAuthService{
				RegisterFunc: func(ctx context.Context, params services.RegisterParams) (*services.AuthResult, error) {
					t.Fatal("service should not be called for invalid input")
					return nil, nil
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			handler.Register(rr, req)

			assertErrorResponse(t, rr, http.StatusBadRequest, tt.message)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	handler := NewAuthHandler(&mockAuthService{
		RegisterFunc: func(ctx context.Context, params services.RegisterParams) (*services.AuthResult, error) {
			return nil, services.ErrEmailAlreadyExists
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(registerBody(nil)))
	rr := httptest.NewRecorder()
	handler.Register(rr, req)

	assertErrorResponse(t, rr, http.StatusConflict, "Email already registered")
}

func TestLogin(t *testing.T) {
	handler := NewAuthHandler(&mockAuthService{
		LoginFunc: func(ctx context.Context, email, password string) (*models.TokenPair, error) {
			if email != "ada@example.com" || password != "Secret1!" {
				t.Errorf("unexpected credentials %q %q", email, password)
			}
			return &models.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"Ada@Example.com","password":"Secret1!"}`))
	rr := httptest.NewRecorder()
	handler.Login(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var pair models.TokenPair
	if err := json.Unmarshal(rr.Body.Bytes(), &pair); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if pair.AccessToken != "access" || pair.RefreshToken != "refresh" {
		t.Errorf("tokens not returned: %+v", pair)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	handler := NewAuthHandler(&mockAuthService{
		LoginFunc: func(ctx context.Context, email, password string) (*models.TokenPair, error) {
			return nil, services.ErrInvalidCredentials
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"ada@example.com","password":"wrong"}`))
	rr := httptest.NewRecorder()
	handler.Login(rr, req)

	assertErrorResponse(t, rr, http.StatusBadRequest, "Email or password is incorrect")
}

func TestRefresh(t *testing.T) {
	handler := NewAuthHandler(&mockAuthService{
		RefreshFunc: func(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
			if refreshToken != "current-refresh" {
				t.Errorf("unexpected token %q", refreshToken)
			}
			return &models.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh",
		strings.NewReader(`{"refresh_token":"current-refresh"}`))
	rr := httptest.NewRecorder()
	handler.Refresh(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var pair models.TokenPair
	if err := json.Unmarshal(rr.Body.Bytes(), &pair); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if pair.RefreshToken != "new-refresh" {
		t.Errorf("got %q, want new-refresh", pair.RefreshToken)
	}
}

func TestRefresh_MissingToken(t *testing.T) {
	handler := NewAuthHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	handler.Refresh(rr, req)

	assertErrorResponse(t, rr, http.StatusBadRequest, "Refresh token is required")
}

func TestRefresh_InvalidToken(t *testing.T) {
	handler := NewAuthHandler(&mockAuthService{
		RefreshFunc: func(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
			return nil, services.ErrRefreshTokenInvalid
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh",
		strings.NewReader(`{"refresh_token":"revoked"}`))
	rr := httptest.NewRecorder()
	handler.Refresh(rr, req)

	assertErrorResponse(t, rr, http.StatusUnauthorized, "Invalid refresh token")
}

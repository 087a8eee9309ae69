package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/application/auth"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/application/credential"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/domain"
	jwtinfra "github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/infrastructure/jwt"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) VerifyEmail(ctx context.Context, accountID, token string) error {
	return m.Called(ctx, accountID, token).Error(0)
}

func (m *mockAuthSvc) Login(ctx context.Context, req domain.LoginRequest) (*auth.LoginResult, error) {
	args := m.Called(ctx, req)
	if res, _ := args.Get(0).(*auth.LoginResult); res != nil {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) ResendVerification(ctx context.Context, req domain.EmailRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthSvc) RequestPasswordReset(ctx context.Context, req domain.EmailRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthSvc) ConsumeOtpAndResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthSvc) Me(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- helpers ---

func jsonReq(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	return httptest.NewRequest(method, target, bytes.NewReader(b))
}

func withAccount(r *http.Request, accountID string) *http.Request {
	return r.WithContext(middleware.WithClaims(r.Context(), &jwtinfra.Claims{AccountID: accountID}))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) MessageEnvelope {
	t.Helper()
	var env MessageEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	return env
}

// --- tests ---

func TestRegister_OK(t *testing.T) {
	svc := new(mockAuthSvc)
	req := domain.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret123", Phone: "+15550001111"}
	svc.On("Register", mock.Anything, req).Return(&domain.Account{AccountID: "acc1", Email: req.Email}, nil)

	w := httptest.NewRecorder()
	NewAuthHandler(svc).Register(w, jsonReq(t, http.MethodPost, "/v1/auth/register", req))

	assert.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Success bool           `json:"success"`
		Data    domain.Account `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	assert.True(t, env.Success)
	assert.Equal(t, "acc1", env.Data.AccountID)
	assert.NotContains(t, w.Body.String(), "password")
	svc.AssertExpectations(t)
}

func TestRegister_BadBody(t *testing.T) {
	svc := new(mockAuthSvc)
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	NewAuthHandler(svc).Register(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decodeMessage(t, w).Success)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegister_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"duplicate email", fmt.Errorf("email already registered: %w", domain.ErrConflict), http.StatusBadRequest, "email already registered: conflict"},
		{"validation", fmt.Errorf("%w: email is invalid", domain.ErrValidation), http.StatusBadRequest, "validation failed: email is invalid"},
		{"store fault", errors.New("dynamodb: throttled"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockAuthSvc)
			svc.On("Register", mock.Anything, mock.Anything).Return(nil, tc.err)

			w := httptest.NewRecorder()
			NewAuthHandler(svc).Register(w, jsonReq(t, http.MethodPost, "/v1/auth/register", domain.RegisterRequest{}))

			assert.Equal(t, tc.status, w.Code)
			env := decodeMessage(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, tc.msg, env.Message)
		})
	}
}

func TestVerifyEmail(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"expired", fmt.Errorf("verification token: %w", domain.ErrExpired), http.StatusBadRequest},
		{"wrong token", fmt.Errorf("verification token: %w", domain.ErrForbidden), http.StatusForbidden},
		{"unknown", fmt.Errorf("verification token: %w", domain.ErrNotFound), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockAuthSvc)
			svc.On("VerifyEmail", mock.Anything, "acc1", "tok").Return(tc.err)

			r := httptest.NewRequest(http.MethodGet, "/v1/auth/verify/acc1?token=tok", nil)
			r = withURLParam(r, "accountId", "acc1")
			w := httptest.NewRecorder()
			NewAuthHandler(svc).VerifyEmail(w, r)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.err == nil, decodeMessage(t, w).Success)
			svc.AssertExpectations(t)
		})
	}
}

func TestLogin_Verified(t *testing.T) {
	svc := new(mockAuthSvc)
	exp := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	svc.On("Login", mock.Anything, domain.LoginRequest{Email: "ana@example.com", Password: "pw"}).Return(&auth.LoginResult{
		Session: &credential.SessionToken{Token: "jwt", ExpiresAt: exp},
		Account: &domain.Account{AccountID: "acc1", Email: "ana@example.com"},
	}, nil)

	w := httptest.NewRecorder()
	NewAuthHandler(svc).Login(w, jsonReq(t, http.MethodPost, "/v1/auth/login",
		domain.LoginRequest{Email: "ana@example.com", Password: "pw"}))

	assert.Equal(t, http.StatusOK, w.Code)
	var env LoginEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	assert.True(t, env.Success)
	assert.Equal(t, "jwt", env.Token)
	assert.True(t, exp.Equal(env.ExpiresAt))
	require.NotNil(t, env.User)
	assert.Equal(t, "acc1", env.User.ID)
}

func TestLogin_VerificationRequired(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("Login", mock.Anything, mock.Anything).Return(&auth.LoginResult{VerificationRequired: true}, nil)

	w := httptest.NewRecorder()
	NewAuthHandler(svc).Login(w, jsonReq(t, http.MethodPost, "/v1/auth/login",
		domain.LoginRequest{Email: "ana@example.com", Password: "pw"}))

	assert.Equal(t, http.StatusAccepted, w.Code)
	var env VerificationRequiredEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	assert.True(t, env.VerificationRequired)
	assert.NotContains(t, w.Body.String(), "token\"")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	NewAuthHandler(svc).Login(w, jsonReq(t, http.MethodPost, "/v1/auth/login",
		domain.LoginRequest{Email: "nobody@example.com", Password: "pw"}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid email or password", decodeMessage(t, w).Message)
}

func TestRequestPasswordReset_AlwaysGeneric(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("RequestPasswordReset", mock.Anything, domain.EmailRequest{Email: "nobody@example.com"}).Return(nil)

	w := httptest.NewRecorder()
	NewAuthHandler(svc).RequestPasswordReset(w, jsonReq(t, http.MethodPost, "/v1/auth/password-reset/request",
		domain.EmailRequest{Email: "nobody@example.com"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeMessage(t, w).Success)
}

func TestConfirmPasswordReset_InvalidOTP(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("ConsumeOtpAndResetPassword", mock.Anything, mock.Anything).Return(domain.ErrInvalidOTP)

	w := httptest.NewRecorder()
	NewAuthHandler(svc).ConfirmPasswordReset(w, jsonReq(t, http.MethodPost, "/v1/auth/password-reset/confirm",
		domain.ResetPasswordRequest{Email: "ana@example.com", OTP: "000000", NewPassword: "newpass"}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid or expired otp", decodeMessage(t, w).Message)
}

func TestMe(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("Me", mock.Anything, "acc1").Return(&domain.Account{AccountID: "acc1", Email: "ana@example.com"}, nil)

	w := httptest.NewRecorder()
	NewAuthHandler(svc).Me(w, withAccount(httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil), "acc1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"acc1"`)
}

func TestMe_NoClaims(t *testing.T) {
	svc := new(mockAuthSvc)
	w := httptest.NewRecorder()
	NewAuthHandler(svc).Me(w, httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "Me", mock.Anything, mock.Anything)
}

package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"speakeradmin/internal/delivery/http/helpers"
	"speakeradmin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	token string
	user  *domain.User
	err   error

	lastEmail    string
	lastPassword string
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	f.lastEmail, f.lastPassword = email, password
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}

func loginRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthController_Login(t *testing.T) {
	svc := &fakeAuthService{token: "jwt-token", user: &domain.User{ID: "u1", Email: "admin@example.com"}}
	c := NewAuthController(testLogger, svc)
	rr := httptest.NewRecorder()

	c.Login(rr, loginRequest(`{"email":"admin@example.com","password":"hunter22"}`))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "admin@example.com", svc.lastEmail)

	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var got LoginResponse
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "jwt-token", got.Token)
	assert.Equal(t, "Bearer", got.TokenType)
	require.NotNil(t, got.User)
	assert.Equal(t, "u1", got.User.ID)
}

func TestAuthController_Login_badCredentials(t *testing.T) {
	svc := &fakeAuthService{err: domain.NewForbiddenError("Invalid email or password")}
	c := NewAuthController(testLogger, svc)
	rr := httptest.NewRecorder()

	c.Login(rr, loginRequest(`{"email":"admin@example.com","password":"wrong"}`))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, helpers.ErrCodeUnauthorized, envelope.Error.Code)
	assert.Equal(t, "Invalid email or password", envelope.Error.Message)
}

func TestAuthController_Login_missingFields(t *testing.T) {
	c := NewAuthController(testLogger, &fakeAuthService{})
	rr := httptest.NewRecorder()

	c.Login(rr, loginRequest(`{"email":""}`))

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthController_Login_malformedBody(t *testing.T) {
	c := NewAuthController(testLogger, &fakeAuthService{})
	rr := httptest.NewRecorder()

	c.Login(rr, loginRequest(`{"email": `))

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

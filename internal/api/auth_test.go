package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/service"
	"github.com/nutrilife/backend/internal/types"
)

func TestSignup(t *testing.T) {
	env := newTestEnv(t)
	user := &models.User{ID: uuid.New(), Email: "new@example.com", Username: "newbie", Role: models.RoleUser}
	env.auth.On("Signup", mock.Anything, &types.SignupRequest{Email: "new@example.com", Username: "newbie", Password: "secret1"}).
		Return(user, nil).Once()
	env.auth.On("GenerateToken", user).Return("jwt-token", nil).Once()

	w := env.do(http.MethodPost, "/api/auth/signup", map[string]string{
		"email": "new@example.com", "username": "newbie", "password": "secret1",
	}, "")

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "jwt-token", body["token"])
	assert.Equal(t, true, body["isNewUser"])
	assert.Equal(t, "newbie", body["user"].(map[string]any)["username"])
	env.auth.AssertExpectations(t)
}

func TestSignupErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"missing fields", service.ErrMissingFields, http.StatusBadRequest},
		{"duplicate", service.ErrUserExists, http.StatusConflict},
		{"database", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.auth.On("Signup", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := env.do(http.MethodPost, "/api/auth/signup", map[string]string{"email": "x@example.com"}, "")
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, decodeBody(t, w), "error")
		})
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	user := &models.User{ID: uuid.New(), Email: "a@example.com", Username: "alice", Role: models.RoleUser}
	env.auth.On("Login", mock.Anything, "alice", "password123").Return(user, nil).Once()
	env.auth.On("Login", mock.Anything, "alice", "wrong").Return(nil, service.ErrInvalidCredentials).Once()
	env.auth.On("GenerateToken", user).Return("jwt-token", nil).Once()

	w := env.do(http.MethodPost, "/api/auth/login", map[string]string{"emailOrUsername": "alice", "password": "password123"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["isNewUser"])

	w = env.do(http.MethodPost, "/api/auth/login", map[string]string{"emailOrUsername": "alice", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/api/auth/login", map[string]string{"emailOrUsername": "alice"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/auth/login", "{not json", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.auth.AssertExpectations(t)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPost, "/api/auth/logout", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-card-keeper/internal/service"
	"github.com/MKhiriev/go-card-keeper/internal/store"
	"github.com/MKhiriev/go-card-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testRegisteredUser() models.User {
	return models.User{Username: "alice", UserID: 42, Email: "alice@example.com", SignupTime: 1700000000}
}


func TestRegister_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.auth.EXPECT().
		Register(gomock.Any(), "alice", "alice@example.com", "s3cret").
		Return(testRegisteredUser(), nil)

	w := postJSON(t, router, "/api/user/register", models.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cret",
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegister_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader("{broken"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)

	tests := []struct {
		name string
		err  error
	}{
		{"username taken", store.ErrUsernameAlreadyExists},
		{"email taken", store.ErrEmailAlreadyExists},
		{"id collision", store.ErrIdentifierCollision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.auth.EXPECT().
				Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(models.User{}, tt.err)

			w := postJSON(t, router, "/api/user/register", models.RegisterRequest{
				Username: "alice", Email: "alice@example.com", Password: "pw",
			}, nil)

			assert.Equal(t, http.StatusConflict, w.Code)
		})
	}
}

func TestRegister_InvalidData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.auth.EXPECT().
		Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.User{}, service.ErrInvalidDataProvided)

	w := postJSON(t, router, "/api/user/register", models.RegisterRequest{}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}


func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.auth.EXPECT().
		Login(gomock.Any(), "alice@example.com", "s3cret").
		Return(models.Session{Token: "opaque-token", UserID: 42}, nil)

	w := postJSON(t, router, "/api/user/login", models.LoginRequest{
		Email: "alice@example.com", Password: "s3cret",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "opaque-token", resp.AccessToken)
	assert.Equal(t, uint64(42), resp.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.auth.EXPECT().
		Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Session{}, service.ErrWrongPassword)

	w := postJSON(t, router, "/api/user/login", models.LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	// the body must not leak which part of the credentials failed
	assert.NotContains(t, w.Body.String(), "password")
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.auth.EXPECT().
		Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Session{}, store.ErrUserNotFound)

	w := postJSON(t, router, "/api/user/login", models.LoginRequest{
		Email: "ghost@example.com", Password: "pw",
	}, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}


func TestChangePassword_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.auth.EXPECT().
		ChangePassword(gomock.Any(), "alice@example.com", "old", "new").
		Return(nil)

	w := postJSON(t, router, "/api/user/change_password", models.ChangePasswordRequest{
		Email: "alice@example.com", OldPassword: "old", NewPassword: "new",
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.auth.EXPECT().
		ChangePassword(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(service.ErrWrongPassword)

	w := postJSON(t, router, "/api/user/change_password", models.ChangePasswordRequest{
		Email: "alice@example.com", OldPassword: "wrong", NewPassword: "new",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteAccount_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.auth.EXPECT().
		DeleteAccount(gomock.Any(), "alice@example.com", "s3cret").
		Return(nil)

	w := postJSON(t, router, "/api/user/delete", models.DeleteUserRequest{
		Email: "alice@example.com", Password: "s3cret",
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}


func TestLogout_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.auth.EXPECT().ValidateToken(gomock.Any(), "live-token").Return(uint64(42), nil)
	m.auth.EXPECT().Logout(gomock.Any(), "live-token").Return(nil)

	w := postJSON(t, router, "/api/user/logout", nil, authed("live-token"))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogout_WithoutToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	w := postJSON(t, router, "/api/user/logout", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

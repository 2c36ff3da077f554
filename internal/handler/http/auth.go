package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-card-keeper/internal/logger"
	"github.com/MKhiriev/go-card-keeper/internal/utils"
	"github.com/MKhiriev/go-card-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		log.Err(err).Msg("user registration failed")
		writeError(w, err)
		return
	}

	log.Debug().Uint64("user_id", registeredUser.UserID).Str("username", registeredUser.Username).Msg("user registered")

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	session, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		log.Err(err).Msg("user login failed")
		writeError(w, err)
		return
	}

	log.Debug().Uint64("user_id", session.UserID).Msg("user successfully logged in")

	utils.WriteJSON(w, models.LoginResponse{
		AccessToken: session.Token,
		UserID:      session.UserID,
	}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ChangePassword(ctx, req.Email, req.OldPassword, req.NewPassword); err != nil {
		log.Err(err).Msg("password change failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.DeleteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.DeleteAccount(ctx, req.Email, req.Password); err != nil {
		log.Err(err).Msg("account deletion failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	// the middleware already parsed the header; a second parse cannot fail
	token, _ := getTokenFromAuthHeader(r.Header.Get("Authorization"))

	if err := h.services.AuthService.Logout(ctx, token); err != nil {
		log.Err(err).Msg("logout failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

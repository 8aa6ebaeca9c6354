package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, errInvalidJSON)
		return
	}

	registeredUser, err := h.services.AuthService.Register(ctx, req.Email, req.FullName, req.Password)
	if err != nil {
		log.Err(err).Msg("user registration failed")
		writeError(w, err)
		return
	}

	log.Info().Int64("id", registeredUser.UserID).Msg("user registered")

	utils.WriteJSON(w, registeredUser, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, errInvalidJSON)
		return
	}

	verificationID, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		log.Err(err).Msg("login password step failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.LoginResponse{
		Message:        "verification code sent to your email",
		VerificationID: verificationID,
	}, http.StatusOK)
}

func (h *Handler) verifyLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.VerifyLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, errInvalidJSON)
		return
	}

	token, user, err := h.services.AuthService.VerifyLogin(ctx, req.VerificationID, req.Code)
	if err != nil {
		log.Err(err).Msg("login verification failed")
		writeError(w, err)
		return
	}

	log.Info().Int64("id", user.UserID).Msg("user logged in")

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.SignedString,
		Path:     "/",
		MaxAge:   int(h.tokenDuration.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSON(w, models.TokenResponse{
		AccessToken: token.SignedString,
		TokenType:   "bearer",
		User:        user,
	}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	rawToken, _ := utils.GetRawTokenFromContext(ctx)
	if err := h.services.AuthService.Logout(ctx, rawToken); err != nil {
		log.Err(err).Msg("logout failed")
		writeError(w, err)
		return
	}

	// drop the session cookie regardless of which transport carried the token
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSON(w, struct {
		Message string `json:"message"`
	}{Message: "logged out"}, http.StatusOK)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, ErrNoSessionToken)
		return
	}

	user, err := h.services.UserService.GetUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("profile lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

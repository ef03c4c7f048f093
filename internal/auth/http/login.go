package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/likestem/authd/internal/auth/service"
	"github.com/likestem/authd/pkg/authsdk"
	"github.com/likestem/authd/pkg/httpx"
	"github.com/likestem/authd/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Exchange a username and password for a session token. Accounts with MFA
//	@Description	enabled receive mfa_required instead of a token; submit the emailed code
//	@Description	via /v1/auth/mfa/verify and log in again.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.LoginResponse	"token or mfa_required"
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	authsdk.ErrorResponse	"invalid username or password"
//	@Failure		500		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}
	if req.Username == "" || req.Password == "" {
		authsdk.NewAuthError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "username and password are required").WriteError(w)
		return
	}

	token, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMFARequired):
			log.Info("login pending MFA verification", "username", req.Username)
			httpx.NoCache(w)
			httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{MFARequired: true})
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Warn("login rejected", "username", req.Username)
			authsdk.ErrInvalidCredentials.WriteError(w)
		default:
			log.Error("failed to log in user", "username", req.Username, "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("user logged in", "username", req.Username)

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{Token: token})
}

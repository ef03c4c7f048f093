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

type MFAVerifyHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		MFA Verification Endpoint
//	@Description	Verify the emailed one-time code for a pending login. Codes are single
//	@Description	use; a mismatched or stale code simply verifies false.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.MFAVerifyRequest	true	"Username and code"
//	@Success		200		{object}	authsdk.MFAVerifyResponse	"verified"
//	@Failure		400		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	authsdk.ErrorResponse		"user not found"
//	@Failure		500		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/auth/mfa/verify [post].
func (h *MFAVerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.MFAVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}
	if req.Username == "" || req.MFAToken == "" {
		authsdk.NewAuthError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "username and mfa_token are required").WriteError(w)
		return
	}

	verified, err := h.AuthService.VerifyMFA(ctx, req.Username, req.MFAToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			authsdk.ErrUserNotFound.WriteError(w)
		default:
			log.Error("failed to verify MFA code", "username", req.Username, "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	if verified {
		log.Info("MFA code verified", "username", req.Username)
	} else {
		log.Warn("MFA code rejected", "username", req.Username)
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.MFAVerifyResponse{Verified: verified})
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/likestem/authd/internal/auth/service"
	"github.com/likestem/authd/pkg/authsdk"
	"github.com/likestem/authd/pkg/slogx"
)

type ForgotPasswordHandler struct {
	ResetService *service.PasswordResetService
}

// ServeHTTP godoc
//
//	@Summary		Forgot Password Endpoint
//	@Description	Request a password-reset link by email. Always answers 202 so the
//	@Description	endpoint can't be used to probe which addresses have accounts.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	authsdk.ForgotPasswordRequest	true	"Account email"
//	@Success		202		"reset email queued if the address is known"
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/password/forgot [post].
func (h *ForgotPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}
	if req.Email == "" {
		authsdk.NewAuthError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "email is required").WriteError(w)
		return
	}

	if err := h.ResetService.RequestReset(ctx, req.Email); err != nil {
		// Unknown addresses get the same 202 as known ones. Real failures
		// are logged but still answered 202; the caller can't act on them.
		if !errors.Is(err, service.ErrUserNotFound) {
			log.Error("failed to issue reset token", "err", err)
		}
	}

	w.WriteHeader(http.StatusAccepted)
}

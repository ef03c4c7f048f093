package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/likestem/authd/internal/auth/service"
	"github.com/likestem/authd/pkg/authsdk"
	"github.com/likestem/authd/pkg/slogx"
)

type ResetPasswordHandler struct {
	ResetService *service.PasswordResetService
}

// ServeHTTP godoc
//
//	@Summary		Reset Password Endpoint
//	@Description	Redeem a reset token from the emailed link and set a new password
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	authsdk.ResetPasswordRequest	true	"Token and new password"
//	@Success		204		"password updated"
//	@Failure		400		{object}	authsdk.ErrorResponse	"invalid or expired token"
//	@Failure		500		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/password/reset [post].
func (h *ResetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		authsdk.NewAuthError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "token and new_password are required").WriteError(w)
		return
	}

	if err := h.ResetService.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			authsdk.ErrInvalidResetToken.WriteError(w)
		case errors.Is(err, service.ErrTokenExpired):
			authsdk.ErrResetTokenExpired.WriteError(w)
		default:
			log.Error("failed to reset password", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("password reset redeemed")

	w.WriteHeader(http.StatusNoContent)
}

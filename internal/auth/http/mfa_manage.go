package http

import (
	"errors"
	"net/http"

	"github.com/likestem/authd/internal/auth/service"
	"github.com/likestem/authd/pkg/authsdk"
	"github.com/likestem/authd/pkg/httpx"
	"github.com/likestem/authd/pkg/slogx"
)

// MFAManageHandler flips email-code MFA on and off for the authenticated
// account.
type MFAManageHandler struct {
	MFAService *service.MFAService
}

// HandleEnable handles POST /v1/mfa/enable
//
//	@Summary		Enable MFA
//	@Description	Require an emailed verification code on future logins
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		204	"MFA enabled"
//	@Failure		401	{object}	authsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		409	{object}	authsdk.ErrorResponse	"MFA already enabled"
//	@Router			/v1/mfa/enable [post].
func (h *MFAManageHandler) HandleEnable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.MFAService.Enable(ctx, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrMFAAlreadyEnabled):
			authsdk.ErrMFAConflict.WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			authsdk.ErrInvalidToken.WriteError(w)
		default:
			log.Error("failed to enable MFA", "user_id", userID, "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("MFA enabled", "user_id", userID)

	w.WriteHeader(http.StatusNoContent)
}

// HandleDisable handles DELETE /v1/mfa
//
//	@Summary		Disable MFA
//	@Description	Stop requiring emailed verification codes and discard any pending code
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		204	"MFA disabled"
//	@Failure		401	{object}	authsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		409	{object}	authsdk.ErrorResponse	"MFA not enabled"
//	@Router			/v1/mfa [delete].
func (h *MFAManageHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.MFAService.Disable(ctx, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrMFANotEnabled):
			authsdk.ErrMFAConflict.WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			authsdk.ErrInvalidToken.WriteError(w)
		default:
			log.Error("failed to disable MFA", "user_id", userID, "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("MFA disabled", "user_id", userID)

	w.WriteHeader(http.StatusNoContent)
}

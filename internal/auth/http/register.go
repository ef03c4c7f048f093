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

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Register Endpoint
//	@Description	Create a new user account with a username, password, and email address
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest		true	"Account details"
//	@Success		201		{object}	authsdk.RegisterResponse	"id, username, email, roles"
//	@Failure		400		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	authsdk.ErrorResponse		"username already taken"
//	@Failure		500		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	if req.Username == "" {
		authsdk.NewAuthError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "username is required").WriteError(w)
		return
	}
	if req.Password == "" {
		authsdk.NewAuthError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "password is required").WriteError(w)
		return
	}
	if req.Email == "" {
		authsdk.NewAuthError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "email is required").WriteError(w)
		return
	}

	user, err := h.AuthService.Register(ctx, req.Username, req.Password, req.Email, req.ContactNumber, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateUser):
			authsdk.ErrDuplicateUser.WriteError(w)
		case errors.Is(err, service.ErrRoleNotFound):
			authsdk.ErrRoleNotFound.WriteError(w)
		default:
			log.Error("failed to register user", "username", req.Username, "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("user registered", "user_id", user.ID, "username", user.Username)

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, authsdk.RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.RoleNames(),
	})
}

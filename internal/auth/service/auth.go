package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pquerna/otp"

	"github.com/likestem/authd/internal/auth/domain"
	"github.com/likestem/authd/internal/auth/mail"
	"github.com/likestem/authd/internal/auth/store"
	"github.com/likestem/authd/pkg/cryptox"
	"github.com/likestem/authd/pkg/idx"
	"github.com/likestem/authd/pkg/jwtx"
	"github.com/likestem/authd/pkg/slogx"
)

// DefaultRoleName is assigned to registrations that don't name a role.
const DefaultRoleName = "Customer"

var (
	ErrDuplicateUser      = errors.New("username already taken")
	ErrRoleNotFound       = errors.New("role not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")

	// ErrMFARequired signals that the credentials were valid but a second
	// factor is pending. It is a branch, not a failure.
	ErrMFARequired = errors.New("MFA verification required")
)

// AuthService implements registration, login, and the email-code MFA
// verification step.
type AuthService struct {
	Store  store.Store
	Mailer mail.Mailer
	Signer jwtx.Signer

	Issuer     string
	SessionTTL time.Duration
}

// Register creates a new user with the named role (DefaultRoleName when
// empty). The password is hashed before anything touches the store.
func (s *AuthService) Register(ctx context.Context, username, password, email, contactNumber, roleName string) (domain.User, error) {
	if roleName == "" {
		roleName = DefaultRoleName
	}

	role, err := s.Store.Roles().GetRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrRoleNotFound
		}
		return domain.User{}, fmt.Errorf("failed to resolve role: %w", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:            idx.New().String(),
		Username:      username,
		PasswordHash:  hash,
		Email:         email,
		ContactNumber: contactNumber,
		Roles:         []domain.Role{role},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateUser
		}
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and returns a signed session token. Unknown
// usernames and wrong passwords collapse into the same error; a dummy hash
// comparison keeps the two paths taking comparable time.
//
// When the user has MFA enabled, Login stores and emails a fresh one-time
// code and returns ErrMFARequired instead of a token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, cryptox.DummyHash())
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to verify password: %w", err)
	}

	if user.MFAEnabled {
		if err := s.sendMFACode(ctx, user); err != nil {
			return "", err
		}
		return "", ErrMFARequired
	}

	return s.issueToken(user)
}

// VerifyMFA checks the emailed one-time code for the user. A matching code
// is cleared before the result is returned; absent or mismatched codes
// report false without error.
func (s *AuthService) VerifyMFA(ctx context.Context, username, code string) (bool, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.MFACode == nil || *user.MFACode == "" {
		return false, nil
	}
	if subtle.ConstantTimeCompare([]byte(*user.MFACode), []byte(code)) != 1 {
		return false, nil
	}

	// Single use: clear before reporting success.
	if err := s.Store.Users().SetMFACode(ctx, user.ID, nil); err != nil {
		return false, fmt.Errorf("failed to clear MFA code: %w", err)
	}

	return true, nil
}

// sendMFACode mints a fresh numeric code, persists it on the user, then
// emails it. A failed send leaves the stored code in place; the user can
// retry the login to get a new one.
func (s *AuthService) sendMFACode(ctx context.Context, user domain.User) error {
	code, err := cryptox.GenerateNumericCode(otp.DigitsSix)
	if err != nil {
		return fmt.Errorf("failed to generate MFA code: %w", err)
	}

	if err := s.Store.Users().SetMFACode(ctx, user.ID, &code); err != nil {
		return fmt.Errorf("failed to store MFA code: %w", err)
	}

	if err := s.Mailer.Send(ctx, user.Email, mail.MFASubject, mail.MFABody(user.Username, code)); err != nil {
		slogx.FromContext(ctx).Error("failed to send MFA code email",
			slog.String("user_id", user.ID), slog.Any("error", err))
		return fmt.Errorf("failed to send MFA code: %w", err)
	}

	return nil
}

func (s *AuthService) issueToken(user domain.User) (string, error) {
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(
		user.ID,
		user.Username,
		user.RoleNames(),
		ttl,
		s.Issuer,
		time.Now().UTC(),
	)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

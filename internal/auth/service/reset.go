package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/likestem/authd/internal/auth/mail"
	"github.com/likestem/authd/internal/auth/store"
	"github.com/likestem/authd/pkg/cryptox"
)

// ResetTokenTTL is how long a password-reset link stays redeemable.
const ResetTokenTTL = 15 * time.Minute

var (
	ErrInvalidToken = errors.New("invalid reset token")
	ErrTokenExpired = errors.New("reset token expired")
)

// PasswordResetService issues and redeems password-reset tokens.
type PasswordResetService struct {
	Store  store.Store
	Mailer mail.Mailer

	// ResetBaseURL is the frontend origin the emailed link points at.
	ResetBaseURL string
}

// RequestReset mints a fresh reset token for the account behind the email
// address and mails out the reset link. A new request replaces any token
// still outstanding.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expiresAt := time.Now().UTC().Add(ResetTokenTTL)

	if err := s.Store.Users().SetResetToken(ctx, user.ID, &token, &expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	body := mail.ResetBody(user.Username, s.ResetBaseURL, token)
	if err := s.Mailer.Send(ctx, user.Email, mail.ResetSubject, body); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// ResetPassword redeems a token and sets the new password. The token and
// its expiry are cleared in the same transaction as the password update, so
// a redeemed token can never be replayed. Expired tokens are rejected and
// left in place for the housekeeping sweep.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.Store.Users().GetUserByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	if user.ResetTokenExpiresAt == nil || time.Now().UTC().After(*user.ResetTokenExpiresAt) {
		return ErrTokenExpired
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		if err := tx.Users().SetResetToken(ctx, user.ID, nil, nil); err != nil {
			return fmt.Errorf("failed to clear reset token: %w", err)
		}
		return nil
	})
}

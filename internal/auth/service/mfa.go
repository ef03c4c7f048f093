package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/likestem/authd/internal/auth/store"
)

var (
	ErrMFAAlreadyEnabled = errors.New("MFA already enabled for this user")
	ErrMFANotEnabled     = errors.New("MFA not enabled for this user")
)

// MFAService flips the email-code MFA flag for a user.
type MFAService struct {
	Store store.Store
}

// Enable turns on MFA for the user. Subsequent logins will require the
// emailed verification code.
func (s *MFAService) Enable(ctx context.Context, userID string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user.MFAEnabled {
		return ErrMFAAlreadyEnabled
	}

	return s.Store.Users().SetMFAEnabled(ctx, userID, true)
}

// Disable turns off MFA and discards any code still outstanding.
func (s *MFAService) Disable(ctx context.Context, userID string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.MFAEnabled {
		return ErrMFANotEnabled
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().SetMFAEnabled(ctx, userID, false); err != nil {
			return fmt.Errorf("failed to disable MFA: %w", err)
		}
		if err := tx.Users().SetMFACode(ctx, userID, nil); err != nil {
			return fmt.Errorf("failed to clear MFA code: %w", err)
		}
		return nil
	})
}

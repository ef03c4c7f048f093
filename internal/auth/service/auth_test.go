package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/likestem/authd/pkg/jwtx"
)

func newAuthService(t *testing.T) (*AuthService, *recordingMailer, jwtx.Verifier) {
	t.Helper()

	signer, verifier := newTestSigner(t, "test-issuer")
	mailer := &recordingMailer{}

	return &AuthService{
		Store:  newTestStore(t),
		Mailer: mailer,
		Signer: signer,
		Issuer: "test-issuer",
	}, mailer, verifier
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthService(t)

	t.Run("creates user with default role", func(t *testing.T) {
		user, err := svc.Register(ctx, "alice", "secret-pass", "alice@example.com", "0400000001", "")
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)
		require.Equal(t, "alice", user.Username)
		require.Equal(t, []string{"Customer"}, user.RoleNames())
		require.NotEqual(t, "secret-pass", user.PasswordHash)
		require.True(t, strings.HasPrefix(user.PasswordHash, "$argon2id$"))
	})

	t.Run("creates user with named role", func(t *testing.T) {
		user, err := svc.Register(ctx, "root", "secret-pass", "root@example.com", "", "Admin")
		require.NoError(t, err)
		require.Equal(t, []string{"Admin"}, user.RoleNames())
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice", "other-pass", "alice2@example.com", "", "")
		require.ErrorIs(t, err, ErrDuplicateUser)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob", "secret-pass", "bob@example.com", "", "Wizard")
		require.ErrorIs(t, err, ErrRoleNotFound)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, mailer, verifier := newAuthService(t)

	user, err := svc.Register(ctx, "alice", "correct-horse", "alice@example.com", "", "")
	require.NoError(t, err)

	t.Run("unknown user and wrong password collapse into one error", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "whatever")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Login(ctx, "alice", "wrong-horse")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("valid credentials yield a verifiable session token", func(t *testing.T) {
		token, err := svc.Login(ctx, "alice", "correct-horse")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := verifier.Verify(token)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.Subject)
		require.Equal(t, "alice", claims.Username)
		require.Equal(t, []string{"Customer"}, claims.Roles)
	})

	t.Run("MFA-enabled login withholds the token and emails a code", func(t *testing.T) {
		require.NoError(t, svc.Store.Users().SetMFAEnabled(ctx, user.ID, true))

		token, err := svc.Login(ctx, "alice", "correct-horse")
		require.ErrorIs(t, err, ErrMFARequired)
		require.Empty(t, token)

		stored, err := svc.Store.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, stored.MFACode)
		require.Len(t, *stored.MFACode, 6)

		msg := mailer.last(t)
		require.Equal(t, "alice@example.com", msg.To)
		require.Contains(t, msg.Body, *stored.MFACode)
	})

	t.Run("each MFA login replaces the outstanding code", func(t *testing.T) {
		first, err := svc.Store.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)

		_, err = svc.Login(ctx, "alice", "correct-horse")
		require.ErrorIs(t, err, ErrMFARequired)

		second, err := svc.Store.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotEqual(t, *first.MFACode, *second.MFACode)
	})
}

func TestVerifyMFA(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthService(t)

	user, err := svc.Register(ctx, "alice", "correct-horse", "alice@example.com", "", "")
	require.NoError(t, err)
	require.NoError(t, svc.Store.Users().SetMFAEnabled(ctx, user.ID, true))

	t.Run("unknown user is an error", func(t *testing.T) {
		_, err := svc.VerifyMFA(ctx, "nobody", "123456")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("no outstanding code verifies false", func(t *testing.T) {
		ok, err := svc.VerifyMFA(ctx, "alice", "123456")
		require.NoError(t, err)
		require.False(t, ok)
	})

	_, err = svc.Login(ctx, "alice", "correct-horse")
	require.ErrorIs(t, err, ErrMFARequired)

	stored, err := svc.Store.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	code := *stored.MFACode

	t.Run("mismatched code verifies false and is kept", func(t *testing.T) {
		ok, err := svc.VerifyMFA(ctx, "alice", "000000")
		require.NoError(t, err)
		require.False(t, ok)

		after, err := svc.Store.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, after.MFACode)
	})

	t.Run("matching code verifies true exactly once", func(t *testing.T) {
		ok, err := svc.VerifyMFA(ctx, "alice", code)
		require.NoError(t, err)
		require.True(t, ok)

		after, err := svc.Store.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Nil(t, after.MFACode)

		ok, err = svc.VerifyMFA(ctx, "alice", code)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

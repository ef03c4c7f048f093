package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/likestem/authd/pkg/authsdk"
)

func TestE2E_MFALoginFlow(t *testing.T) {
	client, inbox := setupAuthServer(t)
	ctx := context.Background()

	_, err := client.Register(ctx, authsdk.RegisterRequest{
		Username: "alice",
		Password: "correct-horse",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	login, err := client.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)

	// Turn on MFA for the account.
	require.NoError(t, client.EnableMFA(ctx, login.Token))

	// Enabling twice conflicts.
	err = client.EnableMFA(ctx, login.Token)
	var authErr *authsdk.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, authsdk.ErrorCodeMFAConflict, authErr.Code)

	// The next login withholds the token and emails a code instead.
	pending, err := client.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)
	require.True(t, pending.MFARequired)
	require.Empty(t, pending.Token)

	code := extractMFACode(t, inbox.lastMail(t, "alice@example.com"))

	// A wrong guess verifies false without burning the code.
	verified, err := client.VerifyMFA(ctx, "alice", "000000")
	require.NoError(t, err)
	require.False(t, verified)

	verified, err = client.VerifyMFA(ctx, "alice", code)
	require.NoError(t, err)
	require.True(t, verified)

	// Codes are single use.
	verified, err = client.VerifyMFA(ctx, "alice", code)
	require.NoError(t, err)
	require.False(t, verified)

	// Disabling MFA restores plain logins.
	require.NoError(t, client.DisableMFA(ctx, login.Token))

	direct, err := client.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, direct.Token)
	require.False(t, direct.MFARequired)
}

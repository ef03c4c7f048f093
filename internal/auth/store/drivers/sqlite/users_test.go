package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/likestem/authd/internal/auth/domain"
	"github.com/likestem/authd/internal/auth/store"
	"github.com/likestem/authd/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st *Store, username, email string) domain.User {
	t.Helper()
	ctx := context.Background()

	role, err := st.Roles().GetRoleByName(ctx, "Customer")
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Email:        email,
		Roles:        []domain.Role{role},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(ctx, u))
	return u
}

func TestMigrationsSeedRoles(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Admin", "Customer"} {
		role, err := st.Roles().GetRoleByName(ctx, name)
		require.NoError(t, err)
		require.Equal(t, name, role.Name)
		require.NotEmpty(t, role.ID)
	}

	_, err := st.Roles().GetRoleByName(ctx, "Wizard")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateAndGetUser(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st, "alice", "alice@example.com")

	byID, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)
	require.Len(t, byID.Roles, 1)
	require.Equal(t, "Customer", byID.Roles[0].Name)
	require.Nil(t, byID.MFACode)
	require.Nil(t, byID.ResetToken)

	byUsername, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, byUsername.ID)

	byEmail, err := st.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	_, err = st.Users().GetUserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	st := newTestStore(t)

	seedUser(t, st, "alice", "alice@example.com")

	ctx := context.Background()
	role, err := st.Roles().GetRoleByName(ctx, "Customer")
	require.NoError(t, err)

	dup := domain.User{
		ID:           idx.New().String(),
		Username:     "alice",
		PasswordHash: "hash",
		Email:        "alice2@example.com",
		Roles:        []domain.Role{role},
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	err = st.Users().CreateUser(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUpdatePasswordHash(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st, "alice", "alice@example.com")

	require.NoError(t, st.Users().UpdatePasswordHash(ctx, u.ID, "new-hash"))

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "new-hash", got.PasswordHash)

	err = st.Users().UpdatePasswordHash(ctx, "no-such-id", "hash")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMFAFields(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st, "alice", "alice@example.com")

	code := "123456"
	require.NoError(t, st.Users().SetMFACode(ctx, u.ID, &code))
	require.NoError(t, st.Users().SetMFAEnabled(ctx, u.ID, true))

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.MFAEnabled)
	require.NotNil(t, got.MFACode)
	require.Equal(t, code, *got.MFACode)

	require.NoError(t, st.Users().SetMFACode(ctx, u.ID, nil))
	got, err = st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, got.MFACode)
}

func TestResetTokenLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st, "alice", "alice@example.com")

	token := "reset-token"
	expiresAt := time.Now().UTC().Add(15 * time.Minute).Truncate(time.Second)
	require.NoError(t, st.Users().SetResetToken(ctx, u.ID, &token, &expiresAt))

	byToken, err := st.Users().GetUserByResetToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, u.ID, byToken.ID)
	require.NotNil(t, byToken.ResetTokenExpiresAt)
	require.WithinDuration(t, expiresAt, *byToken.ResetTokenExpiresAt, time.Second)

	_, err = st.Users().GetUserByResetToken(ctx, "other-token")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Clearing drops both fields together.
	require.NoError(t, st.Users().SetResetToken(ctx, u.ID, nil, nil))
	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, got.ResetToken)
	require.Nil(t, got.ResetTokenExpiresAt)
}

func TestClearExpiredResetTokens(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	stale := seedUser(t, st, "stale", "stale@example.com")
	fresh := seedUser(t, st, "fresh", "fresh@example.com")

	staleToken := "stale-token"
	past := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, st.Users().SetResetToken(ctx, stale.ID, &staleToken, &past))

	freshToken := "fresh-token"
	future := time.Now().UTC().Add(time.Hour)
	require.NoError(t, st.Users().SetResetToken(ctx, fresh.ID, &freshToken, &future))

	cleared, err := st.Users().ClearExpiredResetTokens(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.EqualValues(t, 1, cleared)

	got, err := st.Users().GetUserByID(ctx, stale.ID)
	require.NoError(t, err)
	require.Nil(t, got.ResetToken)

	got, err = st.Users().GetUserByID(ctx, fresh.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ResetToken)
}

func TestWithTx(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st, "alice", "alice@example.com")

	t.Run("commits on nil", func(t *testing.T) {
		err := st.WithTx(ctx, func(tx store.Tx) error {
			return tx.Users().UpdatePasswordHash(ctx, u.ID, "committed")
		})
		require.NoError(t, err)

		got, err := st.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "committed", got.PasswordHash)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		sentinel := errors.New("boom")
		err := st.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Users().UpdatePasswordHash(ctx, u.ID, "rolled-back"); err != nil {
				return err
			}
			return sentinel
		})
		require.ErrorIs(t, err, sentinel)

		got, err := st.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "committed", got.PasswordHash)
	})
}

func TestCreateRole_Duplicate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	err := st.Roles().CreateRole(ctx, domain.Role{
		ID:        idx.New().String(),
		Name:      "Customer",
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

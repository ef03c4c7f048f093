package jwtx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/likestem/authd/pkg/cryptox"
	"github.com/likestem/authd/pkg/jwtx"
)

const exampleIssuer = "https://auth.example.com"

func TestEdDSASignAndVerify(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	kid := "test-key-eddsa"

	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	require.NoError(t, err)
	require.Equal(t, "EdDSA", signer.Alg())
	require.Equal(t, kid, signer.KID())

	now := time.Now().UTC()
	claims := jwtx.NewSessionClaims(
		"user-456",
		"alice",
		[]string{"Customer"},
		5*time.Minute,
		exampleIssuer,
		now,
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	verifier := jwtx.NewVerifierEdDSA(signer.PublicKey(), exampleIssuer)

	parsedClaims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Issuer, parsedClaims.Issuer)
	require.Equal(t, claims.Subject, parsedClaims.Subject)
	require.Equal(t, claims.Username, parsedClaims.Username)
	require.ElementsMatch(t, claims.Roles, parsedClaims.Roles)
	require.NotEmpty(t, parsedClaims.ID) // JTI should be set
}

func TestEdDSAVerifyFailsForWrongIssuer(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	signer, err := jwtx.NewSignerEdDSA("k1", pemKey)
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims("user-789", "bob", nil, time.Minute, exampleIssuer, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	verifier := jwtx.NewVerifierEdDSA(signer.PublicKey(), "https://other.example.com")
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestEdDSAVerifyFailsForWrongKey(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("k1", pemKey)
	require.NoError(t, err)

	otherPEM, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	otherSigner, err := jwtx.NewSignerEdDSA("k2", otherPEM)
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims("user-1", "alice", nil, time.Minute, exampleIssuer, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	verifier := jwtx.NewVerifierEdDSA(otherSigner.PublicKey(), exampleIssuer)
	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestEdDSAVerifyFailsForExpiredToken(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("k1", pemKey)
	require.NoError(t, err)

	// Issued far enough in the past that the TTL has elapsed.
	issuedAt := time.Now().UTC().Add(-time.Hour)
	claims := jwtx.NewSessionClaims("user-1", "alice", nil, time.Minute, exampleIssuer, issuedAt)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	verifier := jwtx.NewVerifierEdDSA(signer.PublicKey(), exampleIssuer)
	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestNewSignerEdDSA_RejectsBadPEM(t *testing.T) {
	_, err := jwtx.NewSignerEdDSA("k1", []byte("not a pem"))
	require.Error(t, err)
}

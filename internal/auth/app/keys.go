package app

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/likestem/authd/pkg/cryptox"
	"github.com/likestem/authd/pkg/jwtx"
)

// initSigningKey loads the Ed25519 signing key from the configured PEM
// file, generating and persisting a fresh key on first run. The key id is
// derived from the key material so restarts keep a stable kid.
func initSigningKey(cfg Config, logger *slog.Logger) (*jwtx.EdDSASigner, jwtx.Verifier, error) {
	keyFile := filepath.Clean(cfg.SigningKeyFile)

	pemKey, err := os.ReadFile(keyFile)
	if os.IsNotExist(err) {
		pemKey, err = cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate signing key: %w", err)
		}
		if err := os.WriteFile(keyFile, pemKey, 0600); err != nil {
			return nil, nil, fmt.Errorf("failed to persist signing key: %w", err)
		}
		logger.Info("generated new signing key", "file", keyFile)
	} else if err != nil {
		return nil, nil, fmt.Errorf("failed to read signing key: %w", err)
	}

	sum := sha256.Sum256(pemKey)
	kid := base64.RawURLEncoding.EncodeToString(sum[:8])

	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load signing key: %w", err)
	}

	verifier := jwtx.NewVerifierEdDSA(signer.PublicKey(), cfg.Issuer)
	return signer, verifier, nil
}

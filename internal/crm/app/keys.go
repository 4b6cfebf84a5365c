package app

import (
	"fmt"
	"log/slog"

	"github.com/SGK112/CRM-sub005/pkg/jwtx"
)

// InitKeys generates the Ed25519 signing keys of this process. Keys live in
// memory only, so a restart invalidates every access token issued before it.
//
// By default two keys are generated with random identifiers and one is
// picked per signature. Use CRM_NUM_KEYS to customize.
func InitKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	logger.Info("initializing ephemeral key manager",
		"algorithm", jwtx.AlgorithmEdDSA,
		"num_keys", cfg.NumKeys,
	)

	keyManager, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:   cfg.Issuer,
		Audience: nil, // tokens carry the workspace instead of an audience
		NumKeys:  cfg.NumKeys,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key manager: %w", err)
	}

	logger.Info("generated ephemeral signing keys",
		"algorithm", keyManager.Algorithm(),
		"num_keys", keyManager.NumSigners(),
		"issuer", cfg.Issuer,
	)
	logger.Warn("tokens issued before this start are no longer valid")

	return keyManager, nil
}

package jwtx

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/SGK112/CRM-sub005/pkg/cryptox"
)

// AlgorithmEdDSA is the only signing algorithm the CRM issues.
const AlgorithmEdDSA = "EdDSA"

// KeyManager owns the signing keys of one process and the KeySet that
// publishes their public halves. Keys are selected randomly for signing.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	signers []Signer
	mu      sync.RWMutex
}

// KeyManagerOptions configures the KeyManager.
type KeyManagerOptions struct {
	// Issuer is the issuer claim (iss) that will be validated in tokens.
	Issuer string

	// Audience is the list of audience values (aud) that will be validated.
	// Empty slice means no audience validation.
	Audience []string

	// NumKeys specifies how many signing keys to generate.
	// Defaults to 2 if not specified. Minimum is 1, maximum is 10.
	NumKeys int
}

// NewEphemeralKeyManager creates a new KeyManager with freshly generated
// Ed25519 keys held only in memory. Tokens do not survive a restart.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	numKeys := opts.NumKeys
	if numKeys <= 0 {
		numKeys = 2
	}
	numKeys = min(numKeys, 10)

	km := &KeyManager{
		KeySet:  NewKeySet(),
		signers: make([]Signer, 0, numKeys),
	}
	km.Verifier = NewVerifierEdDSA(km.KeySet, opts.Issuer, opts.Audience)

	for i := range numKeys {
		signer, err := generateSigner()
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate signer %d: %w", i+1, err)
		}
		if err := km.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: failed to add signer %d: %w", i+1, err)
		}
	}

	return km, nil
}

// generateSigner creates a fresh Ed25519 signer whose kid is the key's
// JWK thumbprint.
func generateSigner() (Signer, error) {
	pemBytes, pub, err := cryptox.NewEd25519KeyPEM()
	if err != nil {
		return nil, fmt.Errorf("failed to generate EdDSA key: %w", err)
	}
	return NewSignerEdDSA(cryptox.Ed25519KeyID(pub), pemBytes)
}

// Algorithm returns the signing algorithm being used.
func (km *KeyManager) Algorithm() string {
	return AlgorithmEdDSA
}

// IsReady returns true if the KeyManager has valid keys loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady() && km.NumSigners() > 0
}

// GetSigner returns a randomly selected signer from the available signing keys.
func (km *KeyManager) GetSigner() Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	default:
		return km.signers[rand.IntN(len(km.signers))]
	}
}

// NumSigners returns the number of active signing keys.
func (km *KeyManager) NumSigners() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.signers)
}

// AddSigner adds a new signing key to both the active signers and the KeySet.
func (km *KeyManager) AddSigner(signer Signer) error {
	if signer == nil {
		return fmt.Errorf("signer cannot be nil")
	}
	if err := signer.Validate(); err != nil {
		return err
	}

	km.mu.Lock()
	defer km.mu.Unlock()

	if err := km.KeySet.AddSigner(signer); err != nil {
		return fmt.Errorf("failed to add signer to keyset: %w", err)
	}
	km.signers = append(km.signers, signer)

	return nil
}

// Sign signs claims with a random active key.
func (km *KeyManager) Sign(claims Claims) (string, error) {
	signer := km.GetSigner()
	if signer == nil {
		return "", fmt.Errorf("jwtx: no signing keys loaded")
	}
	return signer.Sign(claims)
}

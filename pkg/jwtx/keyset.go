package jwtx

import (
	"crypto/ed25519"
	"errors"
	"sync"
)

var ErrNoKey = errors.New("jwtx: key not found")

// KeySet holds the verification keys by kid, in the order they were added.
// The login issuer publishes it and the bearer middleware verifies with it.
type KeySet struct {
	mu   sync.RWMutex
	keys []JWK
	byID map[string]ed25519.PublicKey
}

func NewKeySet() *KeySet {
	return &KeySet{byID: make(map[string]ed25519.PublicKey)}
}

func (k *KeySet) AddSigner(s Signer) error {
	return k.AddJWK(s.PublicJWK())
}

func (k *KeySet) AddJWK(j JWK) error {
	pub, err := j.PublicKey()
	if err != nil {
		return err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.byID[j.Kid] = pub
	k.keys = append(k.keys, j)
	return nil
}

func (k *KeySet) Get(kid string) (ed25519.PublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	pub, ok := k.byID[kid]
	if !ok {
		return nil, ErrNoKey
	}
	return pub, nil
}

// PublicJWKS returns a copy safe to serialise while keys are added.
func (k *KeySet) PublicJWKS() JWKS {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return JWKS{Keys: append([]JWK(nil), k.keys...)}
}

// IsReady reports whether at least one key is loaded. Readiness probes use it.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.byID) > 0
}

// ResetFromJWKS swaps the whole set for the keys of a published JWKS, e.g.
// one fetched with crmsdk. Nothing changes if any key is malformed.
func (k *KeySet) ResetFromJWKS(jwks JWKS) error {
	byID := make(map[string]ed25519.PublicKey, len(jwks.Keys))
	for _, j := range jwks.Keys {
		pub, err := j.PublicKey()
		if err != nil {
			return err
		}
		byID[j.Kid] = pub
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.byID = byID
	k.keys = append([]JWK(nil), jwks.Keys...)
	return nil
}

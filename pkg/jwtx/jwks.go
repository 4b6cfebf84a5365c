package jwtx

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
)

const (
	ktyOKP     = "OKP"
	crvEd25519 = "Ed25519"
)

// JWK is an Ed25519 public key in JSON Web Key form (RFC 8037).
type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use,omitempty"`
	Alg string `json:"alg,omitempty"`
	Kid string `json:"kid,omitempty"`
	Crv string `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
}

// JWKS is the document served on /.well-known/jwks.json.
type JWKS struct {
	Keys []JWK `json:"keys"`
}

func NewEd25519JWK(kid, use, alg string, pub ed25519.PublicKey) JWK {
	return JWK{
		Kty: ktyOKP,
		Use: use,
		Alg: alg,
		Kid: kid,
		Crv: crvEd25519,
		X:   base64.RawURLEncoding.EncodeToString(pub),
	}
}

// PublicKey decodes the key material. Only OKP/Ed25519 keys are accepted.
func (j JWK) PublicKey() (ed25519.PublicKey, error) {
	if j.Kty != ktyOKP {
		return nil, fmt.Errorf("jwtx: unsupported kty %q", j.Kty)
	}
	if j.Crv != crvEd25519 {
		return nil, fmt.Errorf("jwtx: unsupported OKP curve %q", j.Crv)
	}
	raw, err := base64.RawURLEncoding.DecodeString(j.X)
	if err != nil {
		return nil, fmt.Errorf("jwtx: decode x: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("jwtx: Ed25519 key is %d bytes", len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

package jwtx

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

type eddsaSigner struct {
	kid  string
	priv ed25519.PrivateKey
}

// NewSignerEdDSA loads a PKCS8 "PRIVATE KEY" PEM block holding an Ed25519
// key and signs under kid.
func NewSignerEdDSA(kid string, pemKey []byte) (Signer, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, errors.New("jwtx: invalid PEM for Ed25519 key")
	}
	if block.Type != "PRIVATE KEY" {
		return nil, fmt.Errorf("jwtx: want PKCS8 PRIVATE KEY block, got %q", block.Type)
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse PKCS8: %w", err)
	}
	priv, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("jwtx: PKCS8 key is %T, not Ed25519", parsed)
	}
	return &eddsaSigner{kid: kid, priv: priv}, nil
}

func (s *eddsaSigner) Alg() string { return AlgorithmEdDSA }
func (s *eddsaSigner) KID() string { return s.kid }

func (s *eddsaSigner) Sign(claims Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	tok.Header["kid"] = s.kid
	return tok.SignedString(s.priv)
}

func (s *eddsaSigner) PublicJWK() JWK {
	return NewEd25519JWK(s.kid, "sig", AlgorithmEdDSA, s.priv.Public().(ed25519.PublicKey))
}

func (s *eddsaSigner) Validate() error {
	if s.kid == "" {
		return errors.New("jwtx: signer has no kid")
	}
	if len(s.priv) != ed25519.PrivateKeySize {
		return errors.New("jwtx: invalid Ed25519 private key size")
	}
	return nil
}

package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// clockSkew is tolerated on exp and nbf.
const clockSkew = 30 * time.Second

// EdDSAVerifier checks Ed25519 tokens against the keys of a KeySet.
type EdDSAVerifier struct {
	keys   *KeySet
	issuer string
	aud    []string
	parser *jwt.Parser
}

func NewVerifierEdDSA(keys *KeySet, issuer string, aud []string) *EdDSAVerifier {
	return &EdDSAVerifier{
		keys:   keys,
		issuer: issuer,
		aud:    aud,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
			jwt.WithLeeway(clockSkew),
		),
	}
}

var _ Verifier = (*EdDSAVerifier)(nil)

func (v *EdDSAVerifier) Verify(tokenStr string) (Claims, error) {
	var claims Claims
	if _, err := v.parser.ParseWithClaims(tokenStr, &claims, v.keyFor); err != nil {
		return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	err := claims.Validate(Expectations{
		Issuer:   v.issuer,
		Audience: v.aud,
		Leeway:   clockSkew,
	})
	if err != nil {
		return Claims{}, err
	}
	return claims, nil
}

// keyFor resolves the public key named by the token's kid header.
func (v *EdDSAVerifier) keyFor(t *jwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)
	if kid == "" {
		return nil, errors.New("jwtx: missing kid")
	}
	pub, err := v.keys.Get(kid)
	if err != nil {
		return nil, fmt.Errorf("jwtx: unknown kid %q: %w", kid, err)
	}
	return pub, nil
}

package jwtx

import "errors"

// Verifier checks a bearer token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

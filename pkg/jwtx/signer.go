package jwtx

// Signer issues compact JWS tokens under one key id.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	PublicJWK() JWK
	Validate() error
}

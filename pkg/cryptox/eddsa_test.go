package cryptox_test

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/SGK112/CRM-sub005/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestNewEd25519KeyPEM(t *testing.T) {
	pemBytes, pub, err := cryptox.NewEd25519KeyPEM()
	require.NoError(t, err)
	require.Len(t, pub, ed25519.PublicKeySize)

	block, _ := pem.Decode(pemBytes)
	require.NotNil(t, block)
	require.Equal(t, "PRIVATE KEY", block.Type)

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	require.NoError(t, err)

	key, ok := parsed.(ed25519.PrivateKey)
	require.True(t, ok)
	require.True(t, pub.Equal(key.Public()))
}

func TestEd25519KeyID(t *testing.T) {
	// RFC 8037 appendix A.3
	pub := ed25519.PublicKey{
		0xd7, 0x5a, 0x98, 0x01, 0x82, 0xb1, 0x0a, 0xb7, 0xd5, 0x4b, 0xfe, 0xd3, 0xc9, 0x64, 0x07, 0x3a,
		0x0e, 0xe1, 0x72, 0xf3, 0xda, 0xa6, 0x23, 0x25, 0xaf, 0x02, 0x1a, 0x68, 0xf7, 0x07, 0x51, 0x1a,
	}
	require.Equal(t, "kPrK_qmxVWaYVA9wwBF6Iuo3vVzz7TxHCTwXBygrS4k", cryptox.Ed25519KeyID(pub))

	_, other, err := cryptox.NewEd25519KeyPEM()
	require.NoError(t, err)
	require.NotEqual(t, cryptox.Ed25519KeyID(pub), cryptox.Ed25519KeyID(other))
}

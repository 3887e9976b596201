package paillier_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolofshield/paillier-psi/crypterr"
	. "github.com/wolofshield/paillier-psi/paillier"
)

const testKeyBits = 128

func mustKeygen(t *testing.T) *KeyPair {
	t.Helper()
	kp, err := Keygen(context.Background(), testKeyBits)
	require.Nil(t, err)
	return kp
}

func TestKeygenTooSmall(t *testing.T) {
	_, err := Keygen(context.Background(), 64)
	require.NotNil(t, err)
	assert.Equal(t, crypterr.KeySizeTooSmall, err.Kind)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	kp := mustKeygen(t)
	m := big.NewInt(7)
	c, err := Encrypt(m, kp.PK)
	require.Nil(t, err)
	got, err := Decrypt(c, kp.PK, kp.SK)
	require.Nil(t, err)
	assert.Equal(t, 0, m.Cmp(got))
}

func TestEncryptMessageOutOfRange(t *testing.T) {
	kp := mustKeygen(t)
	_, err := Encrypt(kp.PK.N, kp.PK)
	require.NotNil(t, err)
	assert.Equal(t, crypterr.MessageOutOfRange, err.Kind)
}

func TestDecryptCiphertextOutOfRange(t *testing.T) {
	kp := mustKeygen(t)
	_, err := Decrypt(kp.PK.NSquare, kp.PK, kp.SK)
	require.NotNil(t, err)
	assert.Equal(t, crypterr.CiphertextOutOfRange, err.Kind)
}

func TestHomomorphicAddition(t *testing.T) {
	kp := mustKeygen(t)
	m1, m2 := big.NewInt(11), big.NewInt(13)
	c1, err := Encrypt(m1, kp.PK)
	require.Nil(t, err)
	c2, err := Encrypt(m2, kp.PK)
	require.Nil(t, err)

	sum, err := HomoAdd(c1, c2, kp.PK)
	require.Nil(t, err)
	got, err := Decrypt(sum, kp.PK, kp.SK)
	require.Nil(t, err)
	assert.Equal(t, big.NewInt(24), got)
}

func TestZeroAndNMinus1(t *testing.T) {
	kp := mustKeygen(t)
	for _, m := range []*big.Int{big.NewInt(0), new(big.Int).Sub(kp.PK.N, big.NewInt(1))} {
		c, err := Encrypt(m, kp.PK)
		require.Nil(t, err)
		got, err := Decrypt(c, kp.PK, kp.SK)
		require.Nil(t, err)
		assert.Equal(t, 0, m.Cmp(got))
	}
}

func TestClearZeroizesSecret(t *testing.T) {
	kp := mustKeygen(t)
	kp.Clear()
	assert.Equal(t, 0, kp.SK.Lambda.Sign())
	assert.Equal(t, 0, kp.SK.Mu.Sign())
}

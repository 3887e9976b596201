package kea_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolofshield/paillier-psi/crypterr"
	. "github.com/wolofshield/paillier-psi/kea"
	"github.com/wolofshield/paillier-psi/paillier"
)

const testKeyBits = 128

func mustKeygen(t *testing.T) *paillier.KeyPair {
	t.Helper()
	kp, err := paillier.Keygen(context.Background(), testKeyBits)
	require.Nil(t, err)
	return kp
}

func TestKeaRoundTrip(t *testing.T) {
	pkp := mustKeygen(t)
	kkp, err := Keygen(pkp.PK)
	require.Nil(t, err)

	m := big.NewInt(9)
	ct, err := Encrypt(m, pkp.PK, kkp.CtDelta)
	require.Nil(t, err)

	ok, verr := ImageVerify(pkp.PK, pkp.SK, kkp.Xi, ct)
	require.Nil(t, verr)
	assert.True(t, ok)

	got, derr := Decrypt(pkp.PK, pkp.SK, kkp.Xi, ct)
	require.Nil(t, derr)
	assert.Equal(t, 0, m.Cmp(got))
}

// TestKeaTamperedSecondComponentFailsVerification replaces the second
// component of a KEA ciphertext with Enc(1); the image no longer carries
// xi*m, so decryption must refuse to return a plaintext.
func TestKeaTamperedSecondComponentFailsVerification(t *testing.T) {
	pkp := mustKeygen(t)
	kkp, err := Keygen(pkp.PK)
	require.Nil(t, err)

	m := big.NewInt(9)
	ct, err := Encrypt(m, pkp.PK, kkp.CtDelta)
	require.Nil(t, err)

	forged, ferr := paillier.Encrypt(big.NewInt(1), pkp.PK)
	require.Nil(t, ferr)
	ct[1] = forged

	_, derr := Decrypt(pkp.PK, pkp.SK, kkp.Xi, ct)
	require.NotNil(t, derr)
	assert.Equal(t, crypterr.KeaImVerFailed, derr.Kind)
}

func TestKeaClearZeroizesXi(t *testing.T) {
	pkp := mustKeygen(t)
	kkp, err := Keygen(pkp.PK)
	require.Nil(t, err)
	kkp.Clear()
	assert.Equal(t, 0, kkp.Xi.Sign())
}

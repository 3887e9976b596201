package keyring_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolofshield/paillier-psi/crypterr"
	"github.com/wolofshield/paillier-psi/kea"
	. "github.com/wolofshield/paillier-psi/keyring"
	"github.com/wolofshield/paillier-psi/paillier"
)

const testKeyBits = 128

func TestPublicKeyWithoutKeypairFails(t *testing.T) {
	r := New()
	_, err := r.PublicKey()
	require.NotNil(t, err)
	assert.Equal(t, crypterr.NoPaillierKey, err.Kind)
}

func TestSetAndUsePaillierKeypair(t *testing.T) {
	r := New()
	kp, kerr := paillier.Keygen(context.Background(), testKeyBits)
	require.Nil(t, kerr)
	r.SetKeypair(kp)

	assert.True(t, r.HasKeypair())

	pk, err := r.PublicKey()
	require.Nil(t, err)
	assert.Equal(t, 0, pk.N.Cmp(kp.PK.N))

	var decrypted bool
	err = r.WithSecretKey(func(pk *paillier.PublicKey, sk *paillier.SecretKey) error {
		decrypted = sk != nil && pk != nil
		return nil
	})
	require.Nil(t, err)
	assert.True(t, decrypted)

	r.ClearKeypair()
	assert.False(t, r.HasKeypair())
}

func TestWithKeaWithoutKeaFails(t *testing.T) {
	r := New()
	err := r.WithKea(func(kkp *kea.KeyPair) error { return nil })
	require.NotNil(t, err)
	assert.Equal(t, crypterr.NoKeaKey, err.Kind)
}

func TestSetKeaAndDestroy(t *testing.T) {
	r := New()
	kp, kerr := paillier.Keygen(context.Background(), testKeyBits)
	require.Nil(t, kerr)
	r.SetKeypair(kp)

	kkp, kerr := kea.Keygen(kp.PK)
	require.Nil(t, kerr)
	r.SetKea(kkp)
	assert.True(t, r.HasKea())

	r.Destroy()
	assert.False(t, r.HasKeypair())
	assert.False(t, r.HasKea())
}

// TestConcurrentAccess exercises the RWMutex under concurrent readers,
// each holding the read lock for its whole WithSecretKey callback, and
// checks the keypair is still installed afterwards.
func TestConcurrentAccess(t *testing.T) {
	r := New()
	kp, kerr := paillier.Keygen(context.Background(), testKeyBits)
	require.Nil(t, kerr)
	r.SetKeypair(kp)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.WithSecretKey(func(pk *paillier.PublicKey, sk *paillier.SecretKey) error {
				return nil
			})
		}()
	}
	wg.Wait()
	assert.True(t, r.HasKeypair())
}

// Package keyring holds the process-wide Paillier and KEA key material
// behind a single RWMutex-guarded registry. Secret keys are never
// returned by value or pointer to callers; they are lent to a
// caller-supplied closure for the duration of the call and the lock is
// released the instant the closure returns.
package keyring

import (
	"sync"

	logging "github.com/ipfs/go-log"

	"github.com/wolofshield/paillier-psi/crypterr"
	"github.com/wolofshield/paillier-psi/kea"
	"github.com/wolofshield/paillier-psi/paillier"
)

var log = logging.Logger("keyring")

// Registry is the single holder of a node's Paillier and KEA key
// material. The zero value is a valid, empty registry.
type Registry struct {
	mtx sync.RWMutex

	keys *paillier.KeyPair
	kea  *kea.KeyPair
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// SetKeypair installs a Paillier key pair, replacing and zeroizing any
// previously installed one.
func (r *Registry) SetKeypair(kp *paillier.KeyPair) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.keys != nil {
		r.keys.Clear()
	}
	r.keys = kp
	log.Debug("paillier keypair installed")
}

// ClearKeypair zeroizes and drops the installed Paillier key pair, if any.
func (r *Registry) ClearKeypair() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.keys != nil {
		r.keys.Clear()
	}
	r.keys = nil
	log.Debug("paillier keypair cleared")
}

// SetKea installs a KEA key pair, replacing and zeroizing any previously
// installed one.
func (r *Registry) SetKea(kkp *kea.KeyPair) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.kea != nil {
		r.kea.Clear()
	}
	r.kea = kkp
	log.Debug("kea keypair installed")
}

// ClearKea zeroizes and drops the installed KEA key pair, if any.
func (r *Registry) ClearKea() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.kea != nil {
		r.kea.Clear()
	}
	r.kea = nil
	log.Debug("kea keypair cleared")
}

// HasKeypair reports whether a Paillier key pair is currently installed.
func (r *Registry) HasKeypair() bool {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.keys != nil
}

// HasKea reports whether a KEA key pair is currently installed.
func (r *Registry) HasKea() bool {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.kea != nil
}

// PublicKey returns the installed Paillier public key. Public keys carry
// no secret material, so it is safe to return by pointer.
func (r *Registry) PublicKey() (*paillier.PublicKey, *crypterr.RegistryError) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if r.keys == nil {
		return nil, crypterr.NewRegistryError(crypterr.NoPaillierKey)
	}
	return r.keys.PK, nil
}

// WithSecretKey lends the installed Paillier key pair to fn for the
// duration of the call, holding a read lock throughout. fn must not
// retain pk or sk beyond its own return.
func (r *Registry) WithSecretKey(fn func(pk *paillier.PublicKey, sk *paillier.SecretKey) error) *crypterr.RegistryError {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if r.keys == nil {
		return crypterr.NewRegistryError(crypterr.NoPaillierKey)
	}
	if err := fn(r.keys.PK, r.keys.SK); err != nil {
		log.Debugw("withSecretKey callback failed", "error", err)
	}
	return nil
}

// WithKea lends the installed KEA key pair to fn for the duration of the
// call, holding a read lock throughout. fn must not retain kkp beyond
// its own return.
func (r *Registry) WithKea(fn func(kkp *kea.KeyPair) error) *crypterr.RegistryError {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if r.kea == nil {
		return crypterr.NewRegistryError(crypterr.NoKeaKey)
	}
	if err := fn(r.kea); err != nil {
		log.Debugw("withKea callback failed", "error", err)
	}
	return nil
}

// Destroy zeroizes and drops all installed key material. The registry
// remains usable afterward; it simply reports no keys installed.
func (r *Registry) Destroy() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.keys != nil {
		r.keys.Clear()
		r.keys = nil
	}
	if r.kea != nil {
		r.kea.Clear()
		r.kea = nil
	}
	log.Debug("registry destroyed")
}

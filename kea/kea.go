// Package kea hardens Paillier decryption against key-exchange attacks by
// pairing every ciphertext with a companion Enc(xi*m) under a secret
// scalar xi, and gating decryption on the two components being
// consistent images of the same plaintext.
package kea

import (
	"math/big"

	"github.com/wolofshield/paillier-psi/bignat"
	"github.com/wolofshield/paillier-psi/crypterr"
	"github.com/wolofshield/paillier-psi/paillier"
)

// KeyPair bundles ctDelta = (Enc(1), Enc(xi)) with the secret scalar xi.
// Xi must be zeroized via Clear once no longer needed.
type KeyPair struct {
	PK      *paillier.PublicKey
	CtDelta [2]*big.Int
	Xi      *big.Int
}

// Clear zeroizes the secret scalar xi in place.
func (kp *KeyPair) Clear() {
	if kp == nil || kp.Xi == nil {
		return
	}
	words := kp.Xi.Bits()
	for i := range words {
		words[i] = 0
	}
	kp.Xi.SetInt64(0)
}

// Keygen draws xi uniformly below 2^(|n|/2) and builds ctDelta = (Enc(1), Enc(xi)).
func Keygen(pk *paillier.PublicKey) (*KeyPair, *crypterr.Error) {
	halfBits := pk.N.BitLen() / 2
	bound := new(big.Int).Lsh(big.NewInt(1), uint(halfBits))
	xi := bignat.GetRandomPositiveInt(bound)

	c0, err := paillier.Encrypt(big.NewInt(1), pk)
	if err != nil {
		return nil, err
	}
	c1, err := paillier.Encrypt(xi, pk)
	if err != nil {
		return nil, err
	}

	return &KeyPair{PK: pk, CtDelta: [2]*big.Int{c0, c1}, Xi: xi}, nil
}

// Encrypt produces (Enc(m), Enc(xi*m)) by raising ctDelta's components
// to m and re-randomizing, exploiting Paillier's homomorphism:
// ctDelta.0^m * r0^n = Enc(1)^m * Enc(0) = Enc(m), and likewise for xi*m.
func Encrypt(m *big.Int, pk *paillier.PublicKey, ctDelta [2]*big.Int) ([2]*big.Int, *crypterr.Error) {
	r0 := bignat.GetRandomPositiveInt(pk.N)
	r1 := bignat.GetRandomPositiveInt(pk.N)

	r0n := new(big.Int).Exp(r0, pk.N, pk.NSquare)
	r1n := new(big.Int).Exp(r1, pk.N, pk.NSquare)

	c0 := new(big.Int).Exp(ctDelta[0], m, pk.NSquare)
	c0.Mul(c0, r0n)
	c0.Mod(c0, pk.NSquare)

	c1 := new(big.Int).Exp(ctDelta[1], m, pk.NSquare)
	c1.Mul(c1, r1n)
	c1.Mod(c1, pk.NSquare)

	return [2]*big.Int{c0, c1}, nil
}

// ImageVerify decrypts both components and checks mu1 == xi*mu0 (mod n).
func ImageVerify(pk *paillier.PublicKey, sk *paillier.SecretKey, xi *big.Int, ct [2]*big.Int) (bool, *crypterr.Error) {
	mu0, err := paillier.Decrypt(ct[0], pk, sk)
	if err != nil {
		return false, err
	}
	mu1, err := paillier.Decrypt(ct[1], pk, sk)
	if err != nil {
		return false, err
	}
	expected := new(big.Int).Mul(xi, mu0)
	expected.Mod(expected, pk.N)
	return expected.Cmp(mu1) == 0, nil
}

// Decrypt verifies the KEA image and, only on success, returns the
// plaintext carried by ct[0]. A verification failure is a hard
// cryptographic failure: the plaintext is never returned alongside it.
func Decrypt(pk *paillier.PublicKey, sk *paillier.SecretKey, xi *big.Int, ct [2]*big.Int) (*big.Int, *crypterr.Error) {
	ok, err := ImageVerify(pk, sk, xi, ct)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, crypterr.New(crypterr.KeaImVerFailed)
	}
	return paillier.Decrypt(ct[0], pk, sk)
}

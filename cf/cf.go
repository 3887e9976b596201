// Package cf implements the Catalano-Fiore one-level multiplicative
// lifting over Paillier: first-form ciphertexts that are additively
// homomorphic with a plaintext mask offset, one-level multiplication
// producing second-form triples, and second-form decryption.
//
// Two divergent constructions of Add/Mul exist in the literature this
// package is adapted from: a straightforward modular-arithmetic form,
// and a variant routed through an unreduced "Karatsuba mod n" helper
// that is mathematically wrong for ciphertexts living in [0, n^2). Only
// the former is implemented here.
package cf

import (
	"math/big"

	"github.com/wolofshield/paillier-psi/crypterr"
	"github.com/wolofshield/paillier-psi/paillier"
)

// Fst is a Catalano-Fiore first-form ciphertext: C0 = (m - b) mod n is
// plaintext, C1 = Enc(b) hides the mask.
type Fst struct {
	C0 *big.Int
	C1 *big.Int
}

// Snd is the triple produced by one Mul between two first-form
// ciphertexts. It decrypts via Dec(C0) + Dec(C1)*Dec(C2) mod n.
type Snd struct {
	C0 *big.Int
	C1 *big.Int
	C2 *big.Int
}

// Encrypt builds a first-form ciphertext of m under mask b.
func Encrypt(m, b *big.Int, pk *paillier.PublicKey) (*Fst, *crypterr.Error) {
	if !isInRange(m, pk.N) {
		return nil, crypterr.New(crypterr.MessageOutOfRange)
	}
	c0 := new(big.Int).Sub(m, b)
	c0.Mod(c0, pk.N)

	c1, err := paillier.Encrypt(b, pk)
	if err != nil {
		return nil, err
	}
	return &Fst{C0: c0, C1: c1}, nil
}

// Add combines two first-form ciphertexts into the first form of their
// sum, under the combined mask a.b+b.b: C0 adds mod n, C1 multiplies
// mod n^2 (Paillier ciphertext composition).
func Add(a, b *Fst, pk *paillier.PublicKey) *Fst {
	c0 := new(big.Int).Add(a.C0, b.C0)
	c0.Mod(c0, pk.N)
	c1 := new(big.Int).Mul(a.C1, b.C1)
	c1.Mod(c1, pk.NSquare)
	return &Fst{C0: c0, C1: c1}
}

// AddDec decrypts a first-form ciphertext that was produced by Add (or
// is itself plain Encrypt output): m = (C0 + Dec(C1)) mod n.
func AddDec(c *Fst, pk *paillier.PublicKey, sk *paillier.SecretKey) (*big.Int, *crypterr.Error) {
	maskSum, err := paillier.Decrypt(c.C1, pk, sk)
	if err != nil {
		return nil, err
	}
	m := new(big.Int).Add(c.C0, maskSum)
	m.Mod(m, pk.N)
	return m, nil
}

// Mul performs one Catalano-Fiore multiplication between two first-form
// ciphertexts under the same public key, producing a second-form triple
// encrypting the product of their plaintexts.
//
// Let (c0,c1) encrypt m under mask b, and (c0',c1') encrypt m' under
// mask b'. Then c0 = m-b, c0' = m'-b', so
//
//	p = c0*c0' = (m-b)(m'-b') = m*m' - m*b' - m'*b + b*b'
//
// Multiplying Enc(p) by c1^c0' = Enc(b*c0') = Enc(m'*b - b*b') and by
// c1'^c0 = Enc(b'*c0) = Enc(m*b' - b*b') under Paillier's homomorphism
// yields a single ciphertext of m*m' - b*b'. The missing b*b' term is
// restored by MulDec as Dec(C1)*Dec(C2).
func Mul(a, b *Fst, pk *paillier.PublicKey) (*Snd, *crypterr.Error) {
	p := new(big.Int).Mul(a.C0, b.C0)
	p.Mod(p, pk.N)

	e, err := paillier.Encrypt(p, pk)
	if err != nil {
		return nil, err
	}

	acExp := new(big.Int).Exp(a.C1, b.C0, pk.NSquare)
	bcExp := new(big.Int).Exp(b.C1, a.C0, pk.NSquare)

	c0 := new(big.Int).Mul(e, acExp)
	c0.Mod(c0, pk.NSquare)
	c0.Mul(c0, bcExp)
	c0.Mod(c0, pk.NSquare)

	return &Snd{C0: c0, C1: a.C1, C2: b.C1}, nil
}

// MulDec decrypts a second-form triple: (Dec(C0) + Dec(C1)*Dec(C2)) mod n.
func MulDec(t *Snd, pk *paillier.PublicKey, sk *paillier.SecretKey) (*big.Int, *crypterr.Error) {
	d0, err := paillier.Decrypt(t.C0, pk, sk)
	if err != nil {
		return nil, err
	}
	d1, err := paillier.Decrypt(t.C1, pk, sk)
	if err != nil {
		return nil, err
	}
	d2, err := paillier.Decrypt(t.C2, pk, sk)
	if err != nil {
		return nil, err
	}
	m := new(big.Int).Mul(d1, d2)
	m.Add(m, d0)
	m.Mod(m, pk.N)
	return m, nil
}

func isInRange(m, n *big.Int) bool {
	return m.Sign() >= 0 && m.Cmp(n) < 0
}

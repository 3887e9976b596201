// Package paillier implements the Paillier additively-homomorphic
// cryptosystem over safe-prime moduli: key generation, encryption and
// decryption. Every function here is a pure function of its inputs and
// safe to call concurrently.
package paillier

import (
	"context"
	"math/big"

	"github.com/wolofshield/paillier-psi/bignat"
	"github.com/wolofshield/paillier-psi/crypterr"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

// PublicKey is (n, g, n^2). g is always n+1; it is carried explicitly
// because the Catalano-Fiore and KEA layers need it without recomputing.
type PublicKey struct {
	N       *big.Int
	G       *big.Int
	NSquare *big.Int
}

// SecretKey is (lambda, mu). Its backing words are overwritten by Clear,
// which callers must invoke once the key is no longer needed.
type SecretKey struct {
	Lambda *big.Int
	Mu     *big.Int
}

// Clear zeroizes the secret scalars in place. Safe to call more than once.
func (sk *SecretKey) Clear() {
	if sk == nil {
		return
	}
	zeroizeInPlace(sk.Lambda)
	zeroizeInPlace(sk.Mu)
}

// zeroizeInPlace overwrites the words backing a big.Int before it is
// dropped. It writes zero into every word of the slice returned by
// Bits(), which shares the big.Int's backing array, and then sets the
// value to zero, rather than relying on the garbage collector to scrub
// the old allocation. It is best effort: copies that math/big made
// during earlier arithmetic are not reached.
func zeroizeInPlace(n *big.Int) {
	if n == nil {
		return
	}
	words := n.Bits()
	for i := range words {
		words[i] = 0
	}
	n.SetInt64(0)
}

// KeyPair bundles a PublicKey with its SecretKey.
type KeyPair struct {
	PK *PublicKey
	SK *SecretKey
}

// Clear zeroizes the secret half of the pair.
func (kp *KeyPair) Clear() {
	if kp == nil {
		return
	}
	kp.SK.Clear()
}

// Keygen draws two distinct safe primes of nbits bits each and derives a
// Paillier key pair. g is fixed to n+1, the canonical generator for
// safe-prime moduli, which lets gλ mod n² be computed from the algebraic
// identity (n+1)^λ ≡ 1 + λn (mod n²) instead of a modular exponentiation.
func Keygen(ctx context.Context, nbits int) (*KeyPair, *crypterr.Error) {
	p, err := bignat.GenerateSafePrime(ctx, nbits)
	if err != nil {
		return nil, err
	}
	var q *big.Int
	for {
		q, err = bignat.GenerateSafePrime(ctx, nbits)
		if err != nil {
			return nil, err
		}
		if q.Cmp(p) != 0 {
			break
		}
	}

	n := new(big.Int).Mul(p, q)
	nSquare := new(big.Int).Mul(n, n)
	g := new(big.Int).Add(n, one)

	pMinus1 := new(big.Int).Sub(p, one)
	qMinus1 := new(big.Int).Sub(q, one)
	lambda := bignat.Lcm(pMinus1, qMinus1)

	// gLambda = (1 + lambda*n) mod n^2, via (n+1)^lambda = 1 + lambda*n (mod n^2).
	gLambda := new(big.Int).Mul(lambda, n)
	gLambda.Add(gLambda, one)
	gLambda.Mod(gLambda, nSquare)

	lVal := bignat.L(gLambda, n)
	mu, merr := bignat.ModInverse(lVal, n)
	if merr != nil {
		return nil, merr
	}

	return &KeyPair{
		PK: &PublicKey{N: n, G: g, NSquare: nSquare},
		SK: &SecretKey{Lambda: lambda, Mu: mu},
	}, nil
}

// Encrypt computes c = g^m * r^n mod n^2 for a fresh random r coprime to n.
func Encrypt(m *big.Int, pk *PublicKey) (*big.Int, *crypterr.Error) {
	if !bignat.IsInInterval(m, pk.N) {
		return nil, crypterr.New(crypterr.MessageOutOfRange)
	}
	r := bignat.GetRandomPositiveRelativelyPrimeInt(pk.N)

	gm := new(big.Int).Exp(pk.G, m, pk.NSquare)
	rn := new(big.Int).Exp(r, pk.N, pk.NSquare)
	c := new(big.Int).Mul(gm, rn)
	c.Mod(c, pk.NSquare)
	return c, nil
}

// Decrypt computes m = L(c^lambda mod n^2) * mu mod n.
func Decrypt(c *big.Int, pk *PublicKey, sk *SecretKey) (*big.Int, *crypterr.Error) {
	if !bignat.IsInInterval(c, pk.NSquare) {
		return nil, crypterr.New(crypterr.CiphertextOutOfRange)
	}
	cLambda := new(big.Int).Exp(c, sk.Lambda, pk.NSquare)
	l := bignat.L(cLambda, pk.N)
	m := new(big.Int).Mul(l, sk.Mu)
	m.Mod(m, pk.N)
	return m, nil
}

// HomoAdd computes Enc(m1+m2 mod n) from two ciphertexts under the same
// key, exercising the additive homomorphism c1*c2 mod n^2.
func HomoAdd(c1, c2 *big.Int, pk *PublicKey) (*big.Int, *crypterr.Error) {
	if !bignat.IsInInterval(c1, pk.NSquare) || !bignat.IsInInterval(c2, pk.NSquare) {
		return nil, crypterr.New(crypterr.CiphertextOutOfRange)
	}
	c := new(big.Int).Mul(c1, c2)
	c.Mod(c, pk.NSquare)
	return c, nil
}

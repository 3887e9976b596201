// Package bignat collects the arbitrary-precision integer helpers shared
// by the Paillier, Catalano-Fiore and KEA layers: the L-function, gcd/lcm,
// modular inverse, and safe-prime generation with an auditable Miller-Rabin
// pass. Every exported function is a pure function of its inputs and is
// safe to call concurrently from any number of goroutines.
package bignat

import (
	"math/big"

	"github.com/wolofshield/paillier-psi/crypterr"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

// L computes (u-1)/n, the Paillier L-function. The caller guarantees
// u ≡ 1 (mod n); the division is exact integer division.
func L(u, n *big.Int) *big.Int {
	t := new(big.Int).Sub(u, one)
	return new(big.Int).Div(t, n)
}

// Gcd returns gcd(a, b).
func Gcd(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, a, b)
}

// Lcm returns lcm(a, b) = a*b / gcd(a, b).
func Lcm(a, b *big.Int) *big.Int {
	g := Gcd(a, b)
	t := new(big.Int).Mul(a, b)
	return t.Div(t, g)
}

// ModInverse returns a^-1 mod n. It fails with crypterr.NoModularInverse
// when gcd(a, n) != 1.
func ModInverse(a, n *big.Int) (*big.Int, *crypterr.Error) {
	inv := new(big.Int).ModInverse(a, n)
	if inv == nil {
		return nil, crypterr.New(crypterr.NoModularInverse)
	}
	return inv, nil
}

// IsInInterval reports whether 0 <= b < bound.
func IsInInterval(b, bound *big.Int) bool {
	return b.Cmp(zero) >= 0 && b.Cmp(bound) < 0
}

// IsInMultiplicativeGroup reports whether 1 <= v < n and gcd(v, n) == 1.
func IsInMultiplicativeGroup(n, v *big.Int) bool {
	if n == nil || v == nil || zero.Cmp(n) >= 0 {
		return false
	}
	return v.Cmp(n) < 0 && v.Cmp(one) >= 0 && Gcd(v, n).Cmp(one) == 0
}

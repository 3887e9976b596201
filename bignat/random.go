package bignat

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

const mustGetRandomIntMaxBits = 8192

// MustGetRandomInt panics if it is unable to gather entropy from
// rand.Reader or when bits is <= 0. Used only where failure is not a
// recoverable domain condition: entropy exhaustion is treated as fatal
// rather than surfaced as a domain error.
func MustGetRandomInt(bits int) *big.Int {
	if bits <= 0 || mustGetRandomIntMaxBits < bits {
		panic(errors.Errorf("MustGetRandomInt: bits must be in (0, %d]", mustGetRandomIntMaxBits))
	}
	max := new(big.Int).Exp(two, big.NewInt(int64(bits)), nil)
	max.Sub(max, one)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		panic(errors.Wrap(err, "rand.Int failure in MustGetRandomInt"))
	}
	return n
}

// GetRandomPositiveInt samples uniformly from [0, lessThan).
func GetRandomPositiveInt(lessThan *big.Int) *big.Int {
	if lessThan == nil || lessThan.Cmp(zero) <= 0 {
		return nil
	}
	for {
		try, err := rand.Int(rand.Reader, lessThan)
		if err != nil {
			panic(errors.Wrap(err, "rand.Int failure in GetRandomPositiveInt"))
		}
		if try.Cmp(zero) >= 0 {
			return try
		}
	}
}

// GetRandomPositiveRelativelyPrimeInt samples a random element of the
// multiplicative group of units mod n: 1 <= r < n, gcd(r, n) == 1.
func GetRandomPositiveRelativelyPrimeInt(n *big.Int) *big.Int {
	if n == nil || n.Cmp(zero) <= 0 {
		return nil
	}
	for {
		try := MustGetRandomInt(n.BitLen())
		if IsInMultiplicativeGroup(n, try) {
			return try
		}
	}
}

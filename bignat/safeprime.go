package bignat

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/otiai10/primes"

	"github.com/wolofshield/paillier-psi/crypterr"
)

const (
	// MinSafePrimeBits is the smallest safe-prime size this package will
	// generate; GenerateSafePrime fails below it.
	MinSafePrimeBits = 128
	// sieveUpperBound covers every odd prime below 3000, per the combined
	// sieve described for the safe-prime search.
	sieveUpperBound = 3000
	// millerRabinWitnesses is the number of independent Miller-Rabin
	// rounds run against each candidate.
	millerRabinWitnesses = 5
)

// sieve is the list of odd primes below sieveUpperBound, built once at
// package initialisation from github.com/otiai10/primes' sieve for the
// combined-sieve trial-division pass.
var sieve = buildSieve()

func buildSieve() []int64 {
	all := primes.Until(sieveUpperBound).List()
	odd := make([]int64, 0, len(all))
	for _, p := range all {
		if p != 2 {
			odd = append(odd, p)
		}
	}
	return odd
}

// GenerateSafePrime returns a prime p of exactly nbits bits such that
// (p-1)/2 is also prime. It fails with crypterr.KeySizeTooSmall when
// nbits < MinSafePrimeBits (or, defensively, when nbits < 4 so that the
// "top two bits" framing below is well defined). The search is unbounded
// in wall-clock time; ctx is checked before each candidate, and once it
// is done the search stops with an InvalidInput error.
func GenerateSafePrime(ctx context.Context, nbits int) (*big.Int, *crypterr.Error) {
	if nbits < 4 {
		return nil, crypterr.TooSmall(nbits, 4)
	}
	if nbits < MinSafePrimeBits {
		return nil, crypterr.TooSmall(nbits, MinSafePrimeBits)
	}

	gBits := nbits - 1
	for {
		select {
		case <-ctx.Done():
			return nil, crypterr.Invalid("safe prime generation cancelled")
		default:
		}

		candidate, err := randomSophieGermainCandidate(gBits)
		if err != nil {
			return nil, crypterr.Invalid(err.Error())
		}
		if combinedSieveRejects(candidate) {
			continue
		}
		if !millerRabin(candidate, millerRabinWitnesses) {
			continue
		}
		p := new(big.Int).Lsh(candidate, 1)
		p.Add(p, one)
		if p.BitLen() != nbits {
			continue
		}
		if !millerRabin(p, millerRabinWitnesses) {
			continue
		}
		return p, nil
	}
}

// randomSophieGermainCandidate samples an odd integer of exactly gBits
// bits with the top two bits set (so that p = 2*candidate+1 reliably has
// nbits bits) and the low bit set (oddness).
func randomSophieGermainCandidate(gBits int) (*big.Int, error) {
	byteLen := (gBits + 7) / 8
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	excess := uint(byteLen*8 - gBits)
	buf[0] &= byte(0xff >> excess)
	q := new(big.Int).SetBytes(buf)
	q.SetBit(q, gBits-1, 1)
	q.SetBit(q, gBits-2, 1)
	q.SetBit(q, 0, 1)
	return q, nil
}

// combinedSieveRejects rejects a Sophie-Germain candidate q when q itself
// or p=2q+1 is divisible by one of the sieve primes (other than q equalling
// that prime exactly).
func combinedSieveRejects(q *big.Int) bool {
	p := new(big.Int).Lsh(q, 1)
	p.Add(p, one)
	rem := new(big.Int)
	for _, s := range sieve {
		sp := big.NewInt(s)
		if q.Cmp(sp) == 0 {
			continue
		}
		if rem.Mod(q, sp).Sign() == 0 {
			return true
		}
		if rem.Mod(p, sp).Sign() == 0 {
			return true
		}
	}
	return false
}

// millerRabin runs the standard Miller-Rabin primality test with the
// given number of independent witnesses, each drawn uniformly from
// [2, n-2].
func millerRabin(n *big.Int, rounds int) bool {
	if n.Cmp(two) < 0 {
		return false
	}
	if n.Cmp(two) == 0 || n.Cmp(big.NewInt(3)) == 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}

	nMinus1 := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinus1)
	r := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		r++
	}

	upper := new(big.Int).Sub(n, big.NewInt(2))
	for i := 0; i < rounds; i++ {
		a := randomInRange(two, upper)
		x := new(big.Int).Exp(a, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
			continue
		}
		witness := true
		for j := 0; j < r-1; j++ {
			x.Mul(x, x)
			x.Mod(x, n)
			if x.Cmp(nMinus1) == 0 {
				witness = false
				break
			}
		}
		if witness {
			return false
		}
	}
	return true
}

// randomInRange samples uniformly from [lo, hi].
func randomInRange(lo, hi *big.Int) *big.Int {
	span := new(big.Int).Sub(hi, lo)
	span.Add(span, one)
	r := GetRandomPositiveInt(span)
	return r.Add(r, lo)
}

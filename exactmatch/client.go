package exactmatch

import (
	"math/big"

	"github.com/wolofshield/paillier-psi/cf"
	"github.com/wolofshield/paillier-psi/crypterr"
	"github.com/wolofshield/paillier-psi/paillier"
)

// DecryptAndSum implements phase 4: a database decrypts every second-form
// triple the server returned for it and sums the results, which are each
// expected to be 0 or 1. The sum equals the intersection cardinality with
// overwhelming probability, the only failure mode being a hash-position
// collision between distinct identifiers.
func DecryptAndSum(triples []*cf.Snd, pk *paillier.PublicKey, sk *paillier.SecretKey) (int, *crypterr.Error) {
	sum := big.NewInt(0)
	for _, t := range triples {
		m, err := cf.MulDec(t, pk, sk)
		if err != nil {
			return 0, err
		}
		sum.Add(sum, m)
	}
	return int(sum.Int64()), nil
}

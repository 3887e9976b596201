// Package exactmatch implements the four-phase ExactMatch PSI-cardinality
// protocol: a sparse hash-position occupancy table per database,
// Catalano-Fiore masked encryptions of the plaintext constant 1 at every
// active position, a server that multiplies ciphertexts at common
// positions without learning which database contributed which mask, and
// client-side decrypt-and-sum recovering the intersection size.
package exactmatch

import (
	"math/big"

	"github.com/wolofshield/paillier-psi/bignat"
	"github.com/wolofshield/paillier-psi/cf"
	"github.com/wolofshield/paillier-psi/crypterr"
	"github.com/wolofshield/paillier-psi/paillier"
)

var one = big.NewInt(1)

// Params configures the protocol's hash-position width.
type Params struct {
	HashBits uint
}

// SparseTable is the set of active hash positions for one database.
type SparseTable map[uint32]struct{}

// FtBundle maps an active position to a CF first-form encryption of the
// plaintext constant 1 under a single public key.
type FtBundle map[uint32]*cf.Fst

// DualFtBundle carries the same per-position "one" ciphertexts under two
// distinct public keys, because each database's mask lives modulo a
// different modulus.
type DualFtBundle struct {
	First  FtBundle
	Second FtBundle
}

// BuildSparseTable hashes every identifier into its occupancy position,
// implementing phase 1 for one database.
func BuildSparseTable(identifiers []string, h HashFunc, params Params) SparseTable {
	t := make(SparseTable, len(identifiers))
	for _, id := range identifiers {
		pos := h.Position(id, params.HashBits)
		t[pos] = struct{}{}
	}
	return t
}

// PrepareDualBundle builds the DualFtBundle for phase 2: for every
// active position it samples two independent masks and CF-encrypts the
// constant 1 under pk1 and pk2 respectively.
func PrepareDualBundle(t SparseTable, pk1, pk2 *paillier.PublicKey) (*DualFtBundle, *crypterr.Error) {
	bundle := &DualFtBundle{
		First:  make(FtBundle, len(t)),
		Second: make(FtBundle, len(t)),
	}
	for pos := range t {
		b1 := bignat.GetRandomPositiveInt(pk1.N)
		ft1, err := cf.Encrypt(one, b1, pk1)
		if err != nil {
			return nil, err
		}
		bundle.First[pos] = ft1

		b2 := bignat.GetRandomPositiveInt(pk2.N)
		ft2, err := cf.Encrypt(one, b2, pk2)
		if err != nil {
			return nil, err
		}
		bundle.Second[pos] = ft2
	}
	return bundle, nil
}

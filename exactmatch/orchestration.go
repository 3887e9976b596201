package exactmatch

import (
	"context"

	logging "github.com/ipfs/go-log"

	"github.com/wolofshield/paillier-psi/cf"
	"github.com/wolofshield/paillier-psi/crypterr"
	"github.com/wolofshield/paillier-psi/keyring"
	"github.com/wolofshield/paillier-psi/paillier"
)

var log = logging.Logger("exactmatch")

// Database is one participant side of ExactMatch: it owns its own key
// registry and occupancy table, and exposes exactly the state the
// protocol's phases need from it.
type Database struct {
	Registry *keyring.Registry
	Table    SparseTable
}

// NewDatabase runs phase 0 for one participant: it generates a fresh
// Paillier key pair of the given bit length and installs it in a new
// registry.
func NewDatabase(ctx context.Context, keyBits int) (*Database, *crypterr.Error) {
	kp, err := paillier.Keygen(ctx, keyBits)
	if err != nil {
		return nil, err
	}
	reg := keyring.New()
	reg.SetKeypair(kp)
	return &Database{Registry: reg}, nil
}

// Hash runs phase 1, hashing identifiers into the database's occupancy
// table.
func (d *Database) Hash(identifiers []string, h HashFunc, params Params) {
	d.Table = BuildSparseTable(identifiers, h, params)
	log.Debugw("sparse table built", "active_positions", len(d.Table))
}

// PrepareBundle runs phase 2 for this database against the two
// participants' public keys.
func (d *Database) PrepareBundle(pk1, pk2 *paillier.PublicKey) (*DualFtBundle, *crypterr.Error) {
	return PrepareDualBundle(d.Table, pk1, pk2)
}

// Decrypt runs phase 4 for this database over the triples the server
// returned to it.
func (d *Database) Decrypt(triples []*cf.Snd) (int, *crypterr.Error) {
	var count int
	var err *crypterr.Error
	werr := d.Registry.WithSecretKey(func(pk *paillier.PublicKey, sk *paillier.SecretKey) error {
		count, err = DecryptAndSum(triples, pk, sk)
		if err != nil {
			return err
		}
		return nil
	})
	if werr != nil {
		return 0, crypterr.AsDomainError(werr)
	}
	return count, err
}

// Server is the semi-honest third party running phase 3.
type Server struct{}

// Compute runs phase 3 over the two databases' tables and bundles.
func (Server) Compute(a, b *Database, bundleA, bundleB *DualFtBundle, pk1, pk2 *paillier.PublicKey) ([]*cf.Snd, []*cf.Snd, error) {
	l1, l2, err := ServerCompute(a.Table, b.Table, bundleA, bundleB, pk1, pk2)
	if err != nil {
		log.Warnw("server compute encountered errors", "error", err)
		return nil, nil, err
	}
	return l1, l2, nil
}

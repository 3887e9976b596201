package exactmatch

import (
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/wolofshield/paillier-psi/cf"
	"github.com/wolofshield/paillier-psi/paillier"
)

// serverConcurrency bounds how many positions are multiplied in
// parallel during ServerCompute.
const serverConcurrency = 8

// ServerCompute implements phase 3: it intersects the two databases'
// active-position sets and, for every common position, runs one CF.Mul
// under each public key. The returned lists are intentionally
// unassociated with their source position and are not returned in a
// stable order, so that the caller cannot correlate a triple back to a
// specific identifier beyond what occupancy already leaks.
func ServerCompute(tA, tB SparseTable, bundleA, bundleB *DualFtBundle, pk1, pk2 *paillier.PublicKey) ([]*cf.Snd, []*cf.Snd, error) {
	common := intersectPositions(tA, tB)

	type result struct {
		first  *cf.Snd
		second *cf.Snd
		err    error
	}

	positions := make([]uint32, 0, len(common))
	for pos := range common {
		positions = append(positions, pos)
	}

	results := make([]result, len(positions))
	var wg sync.WaitGroup
	sem := make(chan struct{}, serverConcurrency)

	for idx, pos := range positions {
		wg.Add(1)
		go func(idx int, pos uint32) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			snd1, err := cf.Mul(bundleA.First[pos], bundleB.First[pos], pk1)
			if err != nil {
				results[idx] = result{err: err}
				return
			}
			snd2, err := cf.Mul(bundleA.Second[pos], bundleB.Second[pos], pk2)
			if err != nil {
				results[idx] = result{err: err}
				return
			}
			results[idx] = result{first: snd1, second: snd2}
		}(idx, pos)
	}
	wg.Wait()

	var errs *multierror.Error
	l1 := make([]*cf.Snd, 0, len(positions))
	l2 := make([]*cf.Snd, 0, len(positions))
	for _, r := range results {
		if r.err != nil {
			errs = multierror.Append(errs, r.err)
			continue
		}
		l1 = append(l1, r.first)
		l2 = append(l2, r.second)
	}
	if errs != nil {
		return nil, nil, errs.ErrorOrNil()
	}
	return l1, l2, nil
}

func intersectPositions(a, b SparseTable) SparseTable {
	common := make(SparseTable)
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	for pos := range small {
		if _, ok := large[pos]; ok {
			common[pos] = struct{}{}
		}
	}
	return common
}

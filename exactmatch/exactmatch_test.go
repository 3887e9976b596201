package exactmatch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/wolofshield/paillier-psi/exactmatch"
)

const testKeyBits = 128

// idealHash assigns each of A, B, C, D a distinct position, modelling
// the "ideal hash, no collisions" assumption of the literal end-to-end
// scenario.
type idealHash struct{}

func (idealHash) Position(identifier string, hashBits uint) uint32 {
	switch identifier {
	case "A":
		return 0
	case "B":
		return 1
	case "C":
		return 2
	case "D":
		return 3
	default:
		return 9
	}
}

// TestExactMatchEndToEnd reproduces the literal scenario: H=10,
// D1=["A","B","C"], D2=["B","C","D"], ideal hash -> cardinality 2.
func TestExactMatchEndToEnd(t *testing.T) {
	ctx := context.Background()
	params := Params{HashBits: 10}

	d1, err := NewDatabase(ctx, testKeyBits)
	require.Nil(t, err)
	d2, err := NewDatabase(ctx, testKeyBits)
	require.Nil(t, err)

	d1.Hash([]string{"A", "B", "C"}, idealHash{}, params)
	d2.Hash([]string{"B", "C", "D"}, idealHash{}, params)

	pk1, perr := d1.Registry.PublicKey()
	require.Nil(t, perr)
	pk2, perr := d2.Registry.PublicKey()
	require.Nil(t, perr)

	bundle1, err := d1.PrepareBundle(pk1, pk2)
	require.Nil(t, err)
	bundle2, err := d2.PrepareBundle(pk1, pk2)
	require.Nil(t, err)

	var server Server
	l1, l2, serr := server.Compute(d1, d2, bundle1, bundle2, pk1, pk2)
	require.NoError(t, serr)

	card1, err := d1.Decrypt(l1)
	require.Nil(t, err)
	card2, err := d2.Decrypt(l2)
	require.Nil(t, err)

	assert.Equal(t, 2, card1)
	assert.Equal(t, 2, card2)
}

func TestBuildSparseTableDistinctPositions(t *testing.T) {
	params := Params{HashBits: 10}
	table := BuildSparseTable([]string{"A", "B", "C"}, idealHash{}, params)
	assert.Len(t, table, 3)
}

func TestMixHash32Deterministic(t *testing.T) {
	h := MixHash32{}
	p1 := h.Position("identifier-1", 16)
	p2 := h.Position("identifier-1", 16)
	assert.Equal(t, p1, p2)
	assert.Less(t, p1, uint32(1)<<16)
}

func TestKeyedHashDiffersByKey(t *testing.T) {
	a := KeyedHash{Key: []byte("key-a")}
	b := KeyedHash{Key: []byte("key-b")}
	pa := a.Position("identifier", 24)
	pb := b.Position("identifier", 24)
	assert.NotEqual(t, pa, pb)
}

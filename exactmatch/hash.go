package exactmatch

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// HashFunc maps an identifier to a position in [0, 2^HashBits). The
// protocol treats the hash as a parameter: the trivial MixHash32 is kept
// for parity with the original occupancy-table construction, but any
// production deployment should use KeyedHash so the server cannot
// enumerate the pre-image space from position occupancy alone.
type HashFunc interface {
	Position(identifier string, hashBits uint) uint32
}

// MixHash32 is a trivial 32-bit multiplicative mixer. It is not a
// commitment and trivially leaks position occupancy to anyone who knows
// the mixing constants; it exists for parity with the reference
// construction and for tests that need a deterministic hash. Distinct
// identifiers can collide, more often the smaller hashBits is.
type MixHash32 struct{}

func (MixHash32) Position(identifier string, hashBits uint) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(identifier); i++ {
		h ^= uint32(identifier[i])
		h *= 16777619
	}
	h ^= h >> 15
	h *= 2246822519
	h ^= h >> 13
	return mask(h, hashBits)
}

// KeyedHash derives positions from SHAKE256 under a shared secret key,
// so that occupancy alone does not let the server recover or enumerate
// identifiers.
type KeyedHash struct {
	Key []byte
}

func (k KeyedHash) Position(identifier string, hashBits uint) uint32 {
	shake := sha3.NewShake256()
	shake.Write(k.Key)
	shake.Write([]byte(identifier))
	out := make([]byte, 4)
	shake.Read(out)
	h := binary.BigEndian.Uint32(out)
	return mask(h, hashBits)
}

func mask(h uint32, hashBits uint) uint32 {
	if hashBits >= 32 {
		return h
	}
	return h & ((uint32(1) << hashBits) - 1)
}

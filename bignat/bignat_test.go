package bignat_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wolofshield/paillier-psi/bignat"
	"github.com/wolofshield/paillier-psi/crypterr"
)

func TestL(t *testing.T) {
	u := big.NewInt(19)
	n := big.NewInt(3)
	assert.Equal(t, big.NewInt(6), bignat.L(u, n))
}

func TestGcdLcm(t *testing.T) {
	a := big.NewInt(12)
	b := big.NewInt(18)
	assert.Equal(t, big.NewInt(6), bignat.Gcd(a, b))
	assert.Equal(t, big.NewInt(36), bignat.Lcm(a, b))
}

func TestModInverse(t *testing.T) {
	inv, err := bignat.ModInverse(big.NewInt(3), big.NewInt(11))
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(4), inv) // 3*4 = 12 = 1 mod 11
}

func TestModInverseNoInverse(t *testing.T) {
	_, err := bignat.ModInverse(big.NewInt(2), big.NewInt(4))
	assert.NotNil(t, err)
	assert.Equal(t, crypterr.NoModularInverse, err.Kind)
}

func TestIsInInterval(t *testing.T) {
	assert.True(t, bignat.IsInInterval(big.NewInt(5), big.NewInt(10)))
	assert.False(t, bignat.IsInInterval(big.NewInt(10), big.NewInt(10)))
	assert.False(t, bignat.IsInInterval(big.NewInt(-1), big.NewInt(10)))
}

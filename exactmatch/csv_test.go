package exactmatch_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/wolofshield/paillier-psi/exactmatch"
)

func TestLoadIdentifiersSkipsEmpty(t *testing.T) {
	csv := "name,NSS,note\nAlice,111-22-3333,ok\nBob,,missing\nCarol,444-55-6666,ok\n"
	ids, err := LoadIdentifiers(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{"111-22-3333", "444-55-6666"}, ids)
}

func TestLoadIdentifiersMissingColumn(t *testing.T) {
	csv := "name,note\nAlice,ok\n"
	_, err := LoadIdentifiers(strings.NewReader(csv))
	assert.Error(t, err)
}

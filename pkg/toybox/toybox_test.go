package toybox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/toybox/pkg/types"
)

func TestProduceToy(t *testing.T) {
	var buf bytes.Buffer

	toy := ProduceToy(19)
	assert.Equal(t, types.KindNintendoSwitch, toy.Kind())
	require.NoError(t, toy.Play(&buf))
	assert.Equal(t, "Save Hyrule!\n", buf.String())

	buf.Reset()
	toy = ProduceToy(5)
	assert.Equal(t, types.KindTrain, toy.Kind())
	require.NoError(t, toy.Play(&buf))
	assert.Equal(t, "choo choo\n", buf.String())

	assert.Equal(t, types.KindBall, ProduceToy(-1).Kind())
}

func TestNewFactory(t *testing.T) {
	f, err := NewFactory(Catalog{Default: types.KindTrampoline})
	require.NoError(t, err)
	assert.Equal(t, types.KindTrampoline, f.Produce(3).Kind())

	_, err = NewFactory(Catalog{})
	assert.ErrorIs(t, err, types.ErrInvalidCatalog)
}

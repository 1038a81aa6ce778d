package gas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mn13/chainext/types"
)

func TestMeterConsume(t *testing.T) {
	m := NewLimitMeter(100)
	require.True(t, m.HasGas())

	require.NoError(t, m.Consume(types.ChainExtensionToken(40)))
	assert.Equal(t, types.Gas(60), m.Remaining())
	assert.Equal(t, types.Gas(40), m.Consumed())

	require.NoError(t, m.Consume(types.ChainExtensionToken(60)))
	assert.Equal(t, types.Gas(0), m.Remaining())
	assert.False(t, m.HasGas())
}

func TestMeterExhaustionIsTerminal(t *testing.T) {
	m := NewLimitMeter(10)

	err := m.Consume(types.ChainExtensionToken(11))
	var gasErr types.OutOfGasError
	require.ErrorAs(t, err, &gasErr)
	assert.Equal(t, types.Gas(11), gasErr.Wanted)
	assert.Equal(t, types.Gas(10), gasErr.Available)

	// the failed charge drained the meter: even tiny charges now fail
	assert.Error(t, m.Consume(types.ChainExtensionToken(1)))
	assert.Equal(t, types.Gas(0), m.Remaining())
}

func TestMeterZeroCharge(t *testing.T) {
	m := NewLimitMeter(5)
	require.NoError(t, m.Consume(types.ChainExtensionToken(0)))
	assert.Equal(t, types.Gas(5), m.Remaining())
}

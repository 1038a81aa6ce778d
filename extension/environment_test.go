package extension

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mn13/chainext/types"
)

// mockRuntime records every interaction so tests can assert on the
// exact calls the environment forwards.
type mockRuntime struct {
	charged   []types.GasToken
	chargeErr error

	readPtr, readSize uint32
	readData          []byte
	readErr           error

	writeOutPtr, writeOutLenPtr uint32
	writeData                   []byte
	writeAllowSkip              bool
	writeCost                   func(uint32) *types.GasToken
	writeCalls                  int

	ext mockExt
}

func (m *mockRuntime) ChargeGas(token types.GasToken) error {
	m.charged = append(m.charged, token)
	return m.chargeErr
}

func (m *mockRuntime) ReadSandboxMemory(ptr, size uint32) ([]byte, error) {
	m.readPtr, m.readSize = ptr, size
	return m.readData, m.readErr
}

func (m *mockRuntime) WriteSandboxOutput(outPtr, outLenPtr uint32, data []byte, allowSkip bool, cost func(uint32) *types.GasToken) error {
	m.writeCalls++
	m.writeOutPtr, m.writeOutLenPtr = outPtr, outLenPtr
	m.writeData = data
	m.writeAllowSkip = allowSkip
	m.writeCost = cost
	return nil
}

func (m *mockRuntime) Ext() ExecContext { return &m.ext }

type mockExt struct {
	callerCalls int
	storage     map[string][]byte
}

func (e *mockExt) Caller() []byte {
	e.callerCalls++
	return []byte("caller")
}

func (e *mockExt) StorageGet(key []byte) ([]byte, error) {
	return e.storage[string(key)], nil
}

func (e *mockExt) StorageSet(key, value []byte) error {
	if e.storage == nil {
		e.storage = map[string][]byte{}
	}
	e.storage[string(key)] = value
	return nil
}

func TestOnlyInExposesAllFourWords(t *testing.T) {
	rt := &mockRuntime{}
	env := NewEnvironment(rt, 42, 0, 7, 9).OnlyIn()

	assert.Equal(t, uint32(42), env.Val0())
	assert.Equal(t, uint32(0), env.Val1())
	assert.Equal(t, uint32(7), env.Val2())
	assert.Equal(t, uint32(9), env.Val3())
}

func TestPrimInBufOutExposesPrimWordsAndWrite(t *testing.T) {
	rt := &mockRuntime{}
	env := NewEnvironment(rt, 5, 6, 0x2000, 0x2004).PrimInBufOut()

	assert.Equal(t, uint32(5), env.Val0())
	assert.Equal(t, uint32(6), env.Val1())

	require.NoError(t, env.Write([]byte("abc"), false, nil))
	assert.Equal(t, uint32(0x2000), rt.writeOutPtr)
	assert.Equal(t, uint32(0x2004), rt.writeOutLenPtr)
	assert.Equal(t, []byte("abc"), rt.writeData)
	assert.False(t, rt.writeAllowSkip)
	assert.Nil(t, rt.writeCost)
}

func TestBufInBufOutReadsDeclaredRange(t *testing.T) {
	rt := &mockRuntime{readData: []byte("sixteen bytes!!!")}
	env := NewEnvironment(rt, 0x1000, 16, 0x2000, 0x2004).BufInBufOut()

	data, err := env.Read()
	require.NoError(t, err)
	assert.Equal(t, []byte("sixteen bytes!!!"), data)
	assert.Equal(t, uint32(0x1000), rt.readPtr)
	assert.Equal(t, uint32(16), rt.readSize)
}

func TestReadPropagatesMemoryError(t *testing.T) {
	rt := &mockRuntime{readErr: types.MemoryAccessError{Offset: 0x1000, Length: 16, Size: 64}}
	env := NewEnvironment(rt, 0x1000, 16, 0, 0).BufInBufOut()

	_, err := env.Read()
	var memErr types.MemoryAccessError
	require.ErrorAs(t, err, &memErr)
}

func TestChargeWeightMintsChainExtensionToken(t *testing.T) {
	rt := &mockRuntime{}
	env := NewEnvironment(rt, 0, 0, 0, 0)

	require.NoError(t, env.ChargeWeight(33))
	require.Len(t, rt.charged, 1)
	assert.Equal(t, types.GasToken{Kind: types.TokenChainExtension, Amount: 33}, rt.charged[0])

	// still available after a transition
	only := env.OnlyIn()
	require.NoError(t, only.ChargeWeight(11))
	require.Len(t, rt.charged, 2)
	assert.Equal(t, types.Gas(11), rt.charged[1].Amount)
}

func TestChargeWeightPropagatesOutOfGas(t *testing.T) {
	rt := &mockRuntime{chargeErr: types.OutOfGasError{Wanted: 33, Available: 2}}
	env := NewEnvironment(rt, 0, 0, 0, 0)

	err := env.ChargeWeight(33)
	var gasErr types.OutOfGasError
	require.ErrorAs(t, err, &gasErr)
	assert.Equal(t, types.Gas(2), gasErr.Available)
}

func TestWriteBuildsPerByteCost(t *testing.T) {
	rt := &mockRuntime{}
	env := NewEnvironment(rt, 0, 0, 0x2000, 0x2004).BufInBufOut()

	per := types.Gas(3)
	require.NoError(t, env.Write(make([]byte, 10), true, &per))
	assert.True(t, rt.writeAllowSkip)
	require.NotNil(t, rt.writeCost)

	token := rt.writeCost(10)
	require.NotNil(t, token)
	assert.Equal(t, types.GasToken{Kind: types.TokenChainExtension, Amount: 30}, *token)
}

func TestWriteCostSaturatesInsteadOfWrapping(t *testing.T) {
	rt := &mockRuntime{}
	env := NewEnvironment(rt, 0, 0, 0x2000, 0x2004).PrimInBufOut()

	huge := types.Gas(1 << 63)
	require.NoError(t, env.Write(make([]byte, 4), false, &huge))
	require.NotNil(t, rt.writeCost)

	token := rt.writeCost(4)
	require.NotNil(t, token)
	assert.Equal(t, types.Gas(1<<64-1), token.Amount)
}

func TestTransitionsAreOneShot(t *testing.T) {
	cases := []struct {
		name       string
		transition func(*Environment)
	}{
		{"only_in", func(e *Environment) { e.OnlyIn() }},
		{"prim_in_buf_out", func(e *Environment) { e.PrimInBufOut() }},
		{"buf_in_buf_out", func(e *Environment) { e.BufInBufOut() }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			env := NewEnvironment(&mockRuntime{}, 1, 2, 3, 4)
			tc.transition(env)

			assert.Panics(t, func() { env.OnlyIn() })
			assert.Panics(t, func() { env.PrimInBufOut() })
			assert.Panics(t, func() { env.BufInBufOut() })
			assert.Panics(t, func() { _ = env.ChargeWeight(1) })
			assert.Panics(t, func() { env.Ext() })
		})
	}
}

func TestDisabledExtension(t *testing.T) {
	ext := Disabled{}
	assert.False(t, ext.Enabled())

	rt := &mockRuntime{}
	env := NewEnvironment(rt, 0, 0, 0, 0)
	_, err := ext.Call(1, env)

	var notAvailable types.NoChainExtensionError
	require.ErrorAs(t, err, &notAvailable)
	// the execution context is touched even though the call fails
	assert.Equal(t, 1, rt.ext.callerCalls)
}

func TestErrorKindsAreDistinct(t *testing.T) {
	var gasErr types.OutOfGasError
	assert.False(t, errors.As(types.NoChainExtensionError{}, &gasErr))
}

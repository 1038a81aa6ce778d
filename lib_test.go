package chainext

import (
	"encoding/binary"
	"testing"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mn13/chainext/examples/kvextension"
	"github.com/mn13/chainext/types"
)

func TestHostCallEndToEnd(t *testing.T) {
	meter := NewGasMeter(1000)
	mem := SliceMemory(make([]byte, 0x3000))
	execCtx := NewKVContext(dbm.NewMemDB(), []byte("alice"))
	binary.LittleEndian.PutUint32(mem[0x2004:], 32)

	outcome, err := HostCall(kvextension.Extension{}, meter, mem, execCtx,
		kvextension.FuncCallerID, 32, 0, 0x2000, 0x2004)
	require.NoError(t, err)
	require.Nil(t, outcome.Terminated)
	assert.Equal(t, uint32(5), outcome.Value)
	assert.Equal(t, []byte("alice"), []byte(mem[0x2000:0x2005]))
}

func TestHostCallDisabled(t *testing.T) {
	meter := NewGasMeter(1000)
	mem := SliceMemory(make([]byte, 64))
	execCtx := NewKVContext(dbm.NewMemDB(), []byte("alice"))

	_, err := HostCall(Disabled{}, meter, mem, execCtx, 1, 0, 0, 0, 0)
	var notAvailable types.NoChainExtensionError
	require.ErrorAs(t, err, &notAvailable)
}

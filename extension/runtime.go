package extension

import (
	"github.com/mn13/chainext/types"
)

// Runtime is the host-side call context a chain extension executes
// against. It is provided by the embedding VM; this package only
// consumes it. All accesses to the guest's sandbox memory go through
// it and are bounds-checked there.
type Runtime interface {
	// ChargeGas charges the token's amount against the call's gas
	// meter. Returns types.OutOfGasError when the meter is exhausted.
	ChargeGas(token types.GasToken) error

	// ReadSandboxMemory copies size bytes starting at ptr out of the
	// guest's linear memory. Returns types.MemoryAccessError if the
	// range is not fully readable; never returns partial data.
	ReadSandboxMemory(ptr, size uint32) ([]byte, error)

	// WriteSandboxOutput writes data into the guest's output buffer at
	// outPtr and stores the actual length to the 32-bit location at
	// outLenPtr. If allowSkip is true and the guest supplied the skip
	// sentinel as outPtr, nothing is written and nil is returned. If
	// cost is non-nil and yields a token for the byte length, that
	// token is charged before any memory is touched.
	WriteSandboxOutput(outPtr, outLenPtr uint32, data []byte, allowSkip bool, cost func(byteCount uint32) *types.GasToken) error

	// Ext exposes the execution context of the current call.
	Ext() ExecContext
}

// ExecContext is the capability set giving an extension access to
// chain state. The dispatch core itself only uses Caller; the storage
// operations exist for concrete extensions.
type ExecContext interface {
	// Caller returns the identity of the account that initiated the
	// current contract call.
	Caller() []byte

	// StorageGet reads a value from the contract's storage, returning
	// nil when the key is absent.
	StorageGet(key []byte) ([]byte, error)

	// StorageSet writes a value to the contract's storage.
	StorageSet(key, value []byte) error
}

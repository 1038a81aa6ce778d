// Package host wires the gas meter, sandbox memory, and execution
// context into the call context chain extensions run against, and
// implements the outer dispatch loop that turns a guest host-call
// trap into a typed extension invocation.
package host

import (
	"github.com/mn13/chainext/extension"
	"github.com/mn13/chainext/internal/runtime/gas"
	"github.com/mn13/chainext/internal/runtime/memory"
	"github.com/mn13/chainext/types"
)

// Runtime is the concrete extension.Runtime for one contract call. It
// holds the call's gas meter, a sandbox over the guest's linear
// memory, and the execution context. It is single-threaded and lives
// on the call stack of one dispatch.
type Runtime struct {
	meter   gas.Meter
	sandbox *memory.Sandbox
	ext     extension.ExecContext
}

var _ extension.Runtime = (*Runtime)(nil)

// NewRuntime builds the call context for one contract call.
func NewRuntime(meter gas.Meter, sandbox *memory.Sandbox, ext extension.ExecContext) *Runtime {
	return &Runtime{meter: meter, sandbox: sandbox, ext: ext}
}

func (r *Runtime) ChargeGas(token types.GasToken) error {
	return r.meter.Consume(token)
}

func (r *Runtime) ReadSandboxMemory(ptr, size uint32) ([]byte, error) {
	return r.sandbox.ReadBytes(ptr, size)
}

// WriteSandboxOutput writes data into the guest's declared output
// buffer. The charge, when priced, happens before any memory is
// touched, so an exhausted meter leaves guest memory untouched.
//
// The guest declares its buffer by storing its capacity at outLenPtr;
// the actual length is stored back there after a successful write. A
// payload exceeding the declared capacity fails with
// types.MemoryAccessError carrying the capacity as the bound.
func (r *Runtime) WriteSandboxOutput(outPtr, outLenPtr uint32, data []byte, allowSkip bool, cost func(byteCount uint32) *types.GasToken) error {
	if allowSkip && outPtr == memory.SkipSentinel {
		return nil
	}
	byteCount := uint32(len(data))
	if cost != nil {
		if token := cost(byteCount); token != nil {
			if err := r.meter.Consume(*token); err != nil {
				return err
			}
		}
	}
	capacity, err := r.sandbox.ReadUint32(outLenPtr)
	if err != nil {
		return err
	}
	if byteCount > capacity {
		return types.MemoryAccessError{Offset: outPtr, Length: byteCount, Size: capacity}
	}
	if err := r.sandbox.WriteBytes(outPtr, data); err != nil {
		return err
	}
	return r.sandbox.WriteUint32(outLenPtr, byteCount)
}

func (r *Runtime) Ext() extension.ExecContext {
	return r.ext
}

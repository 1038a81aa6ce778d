// Package chainext is the main entry point to this library.
//
// It lets a contract VM host expose chain-specific native operations
// ("chain extensions") to sandboxed guest code. A guest host call
// carries a function id and four raw 32-bit words; the dispatch loop
// here turns that into a typed, capability-gated environment and
// hands it to the chain's ChainExtension implementation.
package chainext

import (
	"context"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/mn13/chainext/extension"
	"github.com/mn13/chainext/internal/exec"
	"github.com/mn13/chainext/internal/runtime/gas"
	"github.com/mn13/chainext/internal/runtime/host"
	"github.com/mn13/chainext/internal/runtime/memory"
	"github.com/mn13/chainext/types"
)

// ChainExtension is the interface a chain implements to expose custom
// operations to contracts. See the extension package for the typed
// environment handed to Call.
type ChainExtension = extension.ChainExtension

// Environment is the initial, untyped view of one host call.
type Environment = extension.Environment

// ExecContext is the capability set giving extensions access to chain
// state.
type ExecContext = extension.ExecContext

// Disabled is the extension used by chains exposing no custom
// operations.
type Disabled = extension.Disabled

// GasMeter tracks gas consumption for one contract call.
type GasMeter = gas.Meter

// Memory is the guest linear memory the sandbox reads and writes. A
// wazero module memory satisfies it directly.
type Memory = memory.Memory

// SliceMemory is a byte-slice-backed Memory for embeddings without a
// live wasm instance.
type SliceMemory = memory.SliceMemory

// CallOutcome is the guest-visible result of one dispatched host call.
type CallOutcome = host.CallOutcome

// Frame drives one guest invocation under wazero.
type Frame = host.Frame

// SkipSentinel is the output-pointer value a guest supplies to decline
// an optional output buffer.
const SkipSentinel = memory.SkipSentinel

// NewGasMeter creates a gas meter with the given limit.
func NewGasMeter(limit types.Gas) GasMeter {
	return gas.NewLimitMeter(limit)
}

// NewKVContext builds an execution context over a cometbft-db database
// for a call initiated by caller.
func NewKVContext(db dbm.DB, caller []byte) ExecContext {
	return exec.NewKVContext(db, caller)
}

// HostCall dispatches one guest host call to ext: it builds the call
// context from the gas meter, guest memory, and execution context,
// constructs a fresh initial environment over the four call words,
// and translates the extension's result into the guest-visible
// outcome. Errors (gas exhaustion, memory bounds, extension failures)
// propagate unchanged and abort the contract invocation.
func HostCall(ext ChainExtension, meter GasMeter, mem Memory, execCtx ExecContext, funcID, val0, val1, val2, val3 uint32) (CallOutcome, error) {
	rt := host.NewRuntime(meter, memory.NewSandbox(mem), execCtx)
	return host.Call(ext, rt, funcID, val0, val1, val2, val3)
}

// NewFrame builds the per-invocation state for a guest running under
// wazero.
func NewFrame(ext ChainExtension, meter GasMeter, execCtx ExecContext) *Frame {
	return host.NewFrame(ext, meter, execCtx)
}

// RegisterHostModule instantiates the "env" host module exposing
// call_chain_extension(id, val0..val3) to guests of r.
func RegisterHostModule(ctx context.Context, r wazero.Runtime, frame *Frame) (api.Module, error) {
	return host.RegisterHostModule(ctx, r, frame)
}

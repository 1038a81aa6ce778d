package host

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/mn13/chainext/extension"
	"github.com/mn13/chainext/internal/runtime/gas"
	"github.com/mn13/chainext/internal/runtime/memory"
	"github.com/mn13/chainext/types"
)

// HostModuleName is the import namespace guests use to reach the
// chain extension.
const HostModuleName = "env"

// HostFuncName is the exported host function:
//
//	call_chain_extension(id, val0, val1, val2, val3 i32) -> i32
const HostFuncName = "call_chain_extension"

// unwind is the private panic value that aborts guest execution when
// a host call diverges or fails. Frame.Run recovers it; anything else
// re-panics.
type unwind struct{}

// Frame drives one guest invocation under wazero. It owns the call's
// gas meter and execution context, and records the outcome a host
// call forces on the whole invocation. Single-use, like the dispatch
// it serves.
type Frame struct {
	ext   extension.ChainExtension
	meter gas.Meter
	ctx   extension.ExecContext

	terminated *types.ExecReturnValue
	callErr    error
}

// NewFrame builds the per-invocation state for a wazero guest.
func NewFrame(ext extension.ChainExtension, meter gas.Meter, ctx extension.ExecContext) *Frame {
	return &Frame{ext: ext, meter: meter, ctx: ctx}
}

// hostCall is the body of the exported host function. A converging
// result returns its value to the guest; a diverging result or an
// error is recorded on the frame and unwinds the guest.
func (f *Frame) hostCall(mem memory.Memory, funcID, val0, val1, val2, val3 uint32) uint32 {
	rt := NewRuntime(f.meter, memory.NewSandbox(mem), f.ctx)
	outcome, err := Call(f.ext, rt, funcID, val0, val1, val2, val3)
	if err != nil {
		f.callErr = err
		panic(unwind{})
	}
	if outcome.Terminated != nil {
		f.terminated = outcome.Terminated
		panic(unwind{})
	}
	return outcome.Value
}

// Run invokes a guest function and resolves how it ended: a normal
// return, an early termination requested by a chain extension, or an
// error (gas exhaustion included).
func (f *Frame) Run(ctx context.Context, fn api.Function, params ...uint64) (results []uint64, terminated *types.ExecReturnValue, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(unwind); !ok {
			panic(r)
		}
		results = nil
		terminated, err = f.terminated, f.callErr
	}()
	results, err = fn.Call(ctx, params...)
	if err != nil {
		// wazero reports host-side aborts through its own error; the
		// frame's record is authoritative when set.
		if f.terminated != nil {
			return nil, f.terminated, nil
		}
		if f.callErr != nil {
			return nil, nil, f.callErr
		}
		return nil, nil, err
	}
	return results, nil, nil
}

// RegisterHostModule instantiates the "env" host module exposing
// call_chain_extension to guests of r. Each guest instance needs its
// own Frame; register before instantiating the guest module.
func RegisterHostModule(ctx context.Context, r wazero.Runtime, frame *Frame) (api.Module, error) {
	return r.NewHostModuleBuilder(HostModuleName).
		NewFunctionBuilder().
		WithFunc(func(_ context.Context, mod api.Module, funcID, val0, val1, val2, val3 uint32) uint32 {
			return frame.hostCall(mod.Memory(), funcID, val0, val1, val2, val3)
		}).
		Export(HostFuncName).
		Instantiate(ctx)
}

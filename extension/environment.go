// Package extension defines the API surface between a contract VM
// host and chain-specific native operations ("chain extensions")
// exposed to guest code.
//
// A guest reaches an extension through a host call carrying a function
// id and four raw 32-bit words. Their meaning depends on the calling
// convention of that function id: primitive values, or pointer/length
// pairs into the guest's sandbox memory. The typed environment forces
// an extension to commit to exactly one convention before it can touch
// the words, and only exposes the accessors that convention permits:
//
//	env.OnlyIn()        // Val0, Val1, Val2, Val3
//	env.PrimInBufOut()  // Val0, Val1, Write
//	env.BufInBufOut()   // Read, Write
//
// Accessors outside the chosen convention do not exist on the returned
// type, so misuse fails at compile time rather than reinterpreting
// primitive words as memory pointers.
package extension

import (
	"github.com/mn13/chainext/types"
)

// inner holds the call state shared by every environment shape. The
// runtime reference is exclusive for the duration of the dispatch; the
// four call words never change once the environment is built.
type inner struct {
	runtime      Runtime
	inputPtr     uint32
	inputLen     uint32
	outputPtr    uint32
	outputLenPtr uint32
}

// common carries the accessors available in every state.
type common struct {
	in *inner
}

// ChargeWeight charges amount against the call's gas meter, failing
// with types.OutOfGasError when exhausted. Extensions must charge
// before performing work whose cost scales with input size; the two
// are not linked automatically.
func (c common) ChargeWeight(amount types.Gas) error {
	return c.in.runtime.ChargeGas(types.ChainExtensionToken(amount))
}

// Ext exposes the execution context of the current call.
func (c common) Ext() ExecContext {
	return c.in.runtime.Ext()
}

// primIn grants access to the first two call words as raw values.
type primIn struct {
	in *inner
}

// Val0 returns the first call word. Its meaning is defined by the
// calling convention of the dispatched function id.
func (p primIn) Val0() uint32 { return p.in.inputPtr }

// Val1 returns the second call word.
func (p primIn) Val1() uint32 { return p.in.inputLen }

// primOut grants access to the last two call words as raw values.
type primOut struct {
	in *inner
}

// Val2 returns the third call word.
func (p primOut) Val2() uint32 { return p.in.outputPtr }

// Val3 returns the fourth call word.
func (p primOut) Val3() uint32 { return p.in.outputLenPtr }

// bufIn grants access to the input buffer designated by the first two
// call words.
type bufIn struct {
	in *inner
}

// Read copies the guest's input buffer (Val1 bytes at address Val0)
// out of sandbox memory. Fails with types.MemoryAccessError if the
// range is not fully readable. Charge weight first if the extension's
// cost depends on the input length.
func (b bufIn) Read() ([]byte, error) {
	return b.in.runtime.ReadSandboxMemory(b.in.inputPtr, b.in.inputLen)
}

// bufOut grants access to the output buffer designated by the last two
// call words.
type bufOut struct {
	in *inner
}

// Write writes buf into the guest's output buffer at address Val2 and
// stores the actual length to the 32-bit location at Val3.
//
// If weightPerByte is non-nil, weightPerByte * len(buf) is charged
// before any memory is touched, failing with types.OutOfGasError like
// ChargeWeight does. If allowSkip is true and the guest supplied the
// skip sentinel as the output pointer, the write is skipped without
// error. A buffer larger than the guest's declared capacity fails
// with types.MemoryAccessError.
func (b bufOut) Write(buf []byte, allowSkip bool, weightPerByte *types.Gas) error {
	var cost func(uint32) *types.GasToken
	if weightPerByte != nil {
		per := *weightPerByte
		cost = func(byteCount uint32) *types.GasToken {
			token := types.ChainExtensionToken(types.SaturatingMul(per, types.Gas(byteCount)))
			return &token
		}
	}
	return b.in.runtime.WriteSandboxOutput(b.in.outputPtr, b.in.outputLenPtr, buf, allowSkip, cost)
}

// Environment is the initial, untyped view of one host call. It is
// built by the dispatch loop and handed to ChainExtension.Call; it
// exposes no call words until it is transitioned into exactly one
// calling-convention shape. The transition consumes the handle: each
// Environment transitions at most once, and any use afterwards
// panics. Environments are single-use and must not outlive the
// dispatch.
type Environment struct {
	in *inner
}

// NewEnvironment builds the initial environment for one host call.
// It is intended for the dispatch loop, not for extension authors,
// who only ever receive one as a parameter.
func NewEnvironment(rt Runtime, val0, val1, val2, val3 uint32) *Environment {
	return &Environment{in: &inner{
		runtime:      rt,
		inputPtr:     val0,
		inputLen:     val1,
		outputPtr:    val2,
		outputLenPtr: val3,
	}}
}

// ChargeWeight charges amount against the call's gas meter. Available
// in every state; see common.ChargeWeight.
func (e *Environment) ChargeWeight(amount types.Gas) error {
	return common{in: e.use()}.ChargeWeight(amount)
}

// Ext exposes the execution context of the current call.
func (e *Environment) Ext() ExecContext {
	return common{in: e.use()}.Ext()
}

// OnlyIn commits the call to the all-primitive convention: all four
// words are raw values. Consumes the environment.
func (e *Environment) OnlyIn() *OnlyInEnv {
	in := e.take()
	return &OnlyInEnv{
		common:  common{in: in},
		primIn:  primIn{in: in},
		primOut: primOut{in: in},
	}
}

// PrimInBufOut commits the call to the primitive-in, buffer-out
// convention: words 0 and 1 are raw values, words 2 and 3 designate
// the output buffer. Consumes the environment.
func (e *Environment) PrimInBufOut() *PrimInBufOutEnv {
	in := e.take()
	return &PrimInBufOutEnv{
		common: common{in: in},
		primIn: primIn{in: in},
		bufOut: bufOut{in: in},
	}
}

// BufInBufOut commits the call to the buffer-in, buffer-out
// convention: words 0 and 1 designate the input buffer, words 2 and 3
// the output buffer. Consumes the environment.
func (e *Environment) BufInBufOut() *BufInBufOutEnv {
	in := e.take()
	return &BufInBufOutEnv{
		common: common{in: in},
		bufIn:  bufIn{in: in},
		bufOut: bufOut{in: in},
	}
}

func (e *Environment) use() *inner {
	if e.in == nil {
		panic("chain extension environment used after transition")
	}
	return e.in
}

func (e *Environment) take() *inner {
	in := e.use()
	e.in = nil
	return in
}

// OnlyInEnv is the terminal all-primitive shape. No further
// transitions exist.
type OnlyInEnv struct {
	common
	primIn
	primOut
}

// PrimInBufOutEnv is the terminal primitive-in, buffer-out shape.
type PrimInBufOutEnv struct {
	common
	primIn
	bufOut
}

// BufInBufOutEnv is the terminal buffer-in, buffer-out shape.
type BufInBufOutEnv struct {
	common
	bufIn
	bufOut
}

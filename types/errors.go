package types

import (
	"fmt"
)

// OutOfGasError is returned when a charge exceeds the remaining gas.
// It always aborts the contract invocation; nothing in this module
// recovers from it.
type OutOfGasError struct {
	Wanted    Gas
	Available Gas
}

func (e OutOfGasError) Error() string {
	return fmt.Sprintf("out of gas: required %d, but only %d available", e.Wanted, e.Available)
}

// MemoryAccessError is returned when a read or write targets sandbox
// memory outside the bounds the guest owns or declared. Accesses are
// all-or-nothing; no partial data crosses the boundary.
type MemoryAccessError struct {
	Offset uint32
	Length uint32
	Size   uint32
}

func (e MemoryAccessError) Error() string {
	return fmt.Sprintf("memory access out of bounds: offset %d, length %d, memory size %d", e.Offset, e.Length, e.Size)
}

// NoChainExtensionError is returned when the chain has no extension
// mechanism enabled. Guests see it as an ordinary call failure.
type NoChainExtensionError struct{}

func (NoChainExtensionError) Error() string {
	return "no chain extension is registered"
}

// UnknownFuncError is the error concrete extensions return for a
// function id they do not implement.
type UnknownFuncError struct {
	FuncID uint32
}

func (e UnknownFuncError) Error() string {
	return fmt.Sprintf("unknown chain extension function id %d", e.FuncID)
}

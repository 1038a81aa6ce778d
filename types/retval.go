package types

import "fmt"

// ReturnFlags is the bit field a terminating execution hands back to
// its caller. Bit 0 signals a revert; all other bits are reserved and
// carried through untouched.
type ReturnFlags uint32

const (
	// ReturnFlagRevert marks the terminated execution as reverted:
	// state changes are rolled back but the data is still returned.
	ReturnFlagRevert ReturnFlags = 0x0000_0001
)

// Reverted reports whether the revert bit is set.
func (f ReturnFlags) Reverted() bool {
	return f&ReturnFlagRevert != 0
}

// ExecReturnValue is the guest-visible outcome of an execution that
// terminated early, as if the guest itself had issued a
// terminate-with-data instruction.
type ExecReturnValue struct {
	Flags ReturnFlags
	Data  []byte
}

// DidRevert reports whether the execution ended in a revert.
func (r ExecReturnValue) DidRevert() bool {
	return r.Flags.Reverted()
}

// DivergingRet carries the flags and payload of an early termination
// requested by a chain extension.
type DivergingRet struct {
	Flags ReturnFlags
	Data  []byte
}

// RetVal is the result of one chain extension call.
// Exactly one of the fields is set.
//
// A converging result resumes guest execution, yielding the numeric
// value as the host call's result. A diverging result terminates the
// guest's entire current execution immediately.
type RetVal struct {
	Converging *uint32
	Diverging  *DivergingRet
}

// Converging builds the result that resumes guest execution with v.
func Converging(v uint32) RetVal {
	return RetVal{Converging: &v}
}

// Diverging builds the result that terminates the guest invocation
// with the given flags and payload.
func Diverging(flags ReturnFlags, data []byte) RetVal {
	return RetVal{Diverging: &DivergingRet{Flags: flags, Data: data}}
}

func (r RetVal) String() string {
	switch {
	case r.Converging != nil:
		return fmt.Sprintf("Converging(%d)", *r.Converging)
	case r.Diverging != nil:
		return fmt.Sprintf("Diverging{flags: %#x, data: %d bytes}", uint32(r.Diverging.Flags), len(r.Diverging.Data))
	default:
		return "RetVal(unset)"
	}
}

package host

import (
	"fmt"

	"github.com/mn13/chainext/extension"
	"github.com/mn13/chainext/types"
)

// CallOutcome is the guest-visible result of one dispatched host call.
type CallOutcome struct {
	// Value is the host call's numeric result when the guest
	// continues. Meaningless when Terminated is set.
	Value uint32
	// Terminated, when non-nil, ends the guest's entire current
	// execution with the carried flags and data, as if the guest had
	// issued a terminate-with-data instruction itself.
	Terminated *types.ExecReturnValue
}

// Call dispatches one guest host call to ext. It builds a fresh
// initial environment over rt and the four call words, invokes the
// extension, and translates its result.
//
// A disabled extension is rejected with types.NoChainExtensionError
// before an environment is even constructed. Errors from the
// extension propagate unchanged; the call either fully completes or
// the contract invocation sees the failure.
func Call(ext extension.ChainExtension, rt *Runtime, funcID, val0, val1, val2, val3 uint32) (CallOutcome, error) {
	if !ext.Enabled() {
		return CallOutcome{}, types.NoChainExtensionError{}
	}
	env := extension.NewEnvironment(rt, val0, val1, val2, val3)
	ret, err := ext.Call(funcID, env)
	if err != nil {
		return CallOutcome{}, err
	}
	switch {
	case ret.Converging != nil:
		return CallOutcome{Value: *ret.Converging}, nil
	case ret.Diverging != nil:
		return CallOutcome{Terminated: &types.ExecReturnValue{
			Flags: ret.Diverging.Flags,
			Data:  ret.Diverging.Data,
		}}, nil
	default:
		return CallOutcome{}, fmt.Errorf("chain extension func %d returned neither converging nor diverging result", funcID)
	}
}

package extension

import (
	"github.com/mn13/chainext/types"
)

// ChainExtension is the entry point through which a chain exposes
// custom native operations to contracts. The dispatch loop invokes
// Call once per guest host-call trap with a fresh Init environment.
//
// An implementation inspects funcID, transitions env into the calling
// convention that id requires, performs the operation (reading
// inputs, mutating execution-context state, writing outputs, charging
// gas throughout), and returns a RetVal or an error. Implementations
// must be deterministic given the same execution context and inputs;
// calls are replayed during block re-execution.
type ChainExtension interface {
	Call(funcID uint32, env *Environment) (types.RetVal, error)

	// Enabled reports whether the extension mechanism is available to
	// guests at all. The dispatch loop rejects host calls with
	// types.NoChainExtensionError when it returns false.
	Enabled() bool
}

// Disabled is the extension used by chains that expose no custom
// operations. Its Call still touches the execution context before
// failing so that the cost of a rejected host call stays
// representative of an enabled configuration; benchmarks rely on
// this, do not remove it.
type Disabled struct{}

var _ ChainExtension = Disabled{}

func (Disabled) Enabled() bool { return false }

func (Disabled) Call(_ uint32, env *Environment) (types.RetVal, error) {
	env.Ext().Caller()
	return types.RetVal{}, types.NoChainExtensionError{}
}

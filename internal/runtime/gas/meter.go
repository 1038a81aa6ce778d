// Package gas implements the metering primitive host calls charge
// against.
package gas

import (
	"github.com/mn13/chainext/types"
)

// Meter tracks gas consumption during contract execution.
type Meter interface {
	// Consume charges the token's amount. Returns types.OutOfGasError
	// if the charge exceeds the remaining gas.
	Consume(token types.GasToken) error
	// Remaining returns the amount of gas left.
	Remaining() types.Gas
	// HasGas checks if there is any gas left.
	HasGas() bool
}

// LimitMeter is the default implementation of Meter. Exhaustion is
// terminal: a failed charge drains the meter, so every later charge
// fails as well.
type LimitMeter struct {
	limit    types.Gas
	consumed types.Gas
}

var _ Meter = (*LimitMeter)(nil)

// NewLimitMeter creates a meter with the specified limit.
func NewLimitMeter(limit types.Gas) *LimitMeter {
	return &LimitMeter{limit: limit}
}

func (m *LimitMeter) Consume(token types.GasToken) error {
	if token.Amount > m.Remaining() {
		err := types.OutOfGasError{Wanted: token.Amount, Available: m.Remaining()}
		m.consumed = m.limit
		return err
	}
	m.consumed += token.Amount
	return nil
}

func (m *LimitMeter) Remaining() types.Gas {
	if m.consumed >= m.limit {
		return 0
	}
	return m.limit - m.consumed
}

func (m *LimitMeter) HasGas() bool {
	return m.Remaining() > 0
}

// Consumed returns the total gas charged so far.
func (m *LimitMeter) Consumed() types.Gas {
	return m.consumed
}

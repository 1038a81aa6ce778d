// Package types provides the data contracts shared between the host
// runtime, the dispatch loop, and chain extension implementations.
package types

import "math"

// Gas represents the amount of computational resources consumed during execution.
type Gas = uint64

// TokenKind identifies the origin of a gas charge.
type TokenKind uint8

const (
	// TokenChainExtension is minted for work performed inside a chain
	// extension call, both explicit charges and priced output writes.
	TokenChainExtension TokenKind = iota
)

// GasToken encodes one chargeable unit of host-side work.
type GasToken struct {
	Kind   TokenKind
	Amount Gas
}

// ChainExtensionToken builds the token the typed environment mints for
// extension work.
func ChainExtensionToken(amount Gas) GasToken {
	return GasToken{Kind: TokenChainExtension, Amount: amount}
}

// SaturatingMul multiplies two gas amounts, clamping at the maximum
// instead of wrapping. Per-byte write pricing uses this so a hostile
// length cannot overflow into a cheap charge.
func SaturatingMul(a, b Gas) Gas {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxUint64/b {
		return math.MaxUint64
	}
	return a * b
}

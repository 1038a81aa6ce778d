// Package exec provides the execution-context capability set backed
// by a key-value database: the caller identity and contract storage a
// chain extension may act on.
package exec

import (
	"fmt"

	dbm "github.com/cometbft/cometbft-db"

	"github.com/mn13/chainext/extension"
)

// storagePrefix namespaces contract storage keys inside the shared DB.
var storagePrefix = []byte("cs/")

// KVContext implements extension.ExecContext over a cometbft-db
// database. The caller identity is fixed at construction for the
// lifetime of the call. Deterministic: the same database state and
// inputs yield the same results.
type KVContext struct {
	db     dbm.DB
	caller []byte
}

var _ extension.ExecContext = (*KVContext)(nil)

// NewKVContext builds an execution context for a call initiated by
// caller.
func NewKVContext(db dbm.DB, caller []byte) *KVContext {
	return &KVContext{db: db, caller: caller}
}

func (c *KVContext) Caller() []byte {
	return c.caller
}

func (c *KVContext) StorageGet(key []byte) ([]byte, error) {
	value, err := c.db.Get(storageKey(key))
	if err != nil {
		return nil, fmt.Errorf("storage get: %w", err)
	}
	return value, nil
}

func (c *KVContext) StorageSet(key, value []byte) error {
	if err := c.db.Set(storageKey(key), value); err != nil {
		return fmt.Errorf("storage set: %w", err)
	}
	return nil
}

func storageKey(key []byte) []byte {
	out := make([]byte, 0, len(storagePrefix)+len(key))
	out = append(out, storagePrefix...)
	return append(out, key...)
}

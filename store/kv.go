// Package store defines the key-value collaborator a unit persists its
// state through.
package store

// KV is a minimal key-value storage interface.
//
// Contract:
// - Get MUST return ErrNotFound when the key is absent.
// - Set MUST replace any existing value for the key as a single visible step.
// - Implementations MUST NOT retain or alias caller-supplied buffers.
// - Empty keys MUST be rejected with ErrEmptyKey.
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Has(key []byte) bool
}

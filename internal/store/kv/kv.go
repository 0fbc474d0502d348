// Package kv abstracts the device-local key-value stores: a small,
// quota-limited synced store and a larger same-device store used for
// backups, the remote cache mirror and user preferences.
package kv

import "context"

// Store is a synchronous key-value store with a byte-usage report.
type Store interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set writes the value. Stores with a quota return an error marked
	// errs.ErrQuotaExceeded when the write would exceed it.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the given keys; missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
	// BytesInUse reports the total stored size in bytes.
	BytesInUse(ctx context.Context) (int64, error)
	// Quota returns the capacity ceiling in bytes, 0 meaning unlimited.
	Quota() int64
}

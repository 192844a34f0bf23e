// Package kv provides the keyed store: a string-keyed opaque-value
// persistence primitive with point get/set/delete and prefix enumeration.
// All post and user records live here, partitioned by key prefix.
package kv

import (
	"context"
	"errors"
)

// Reserved key namespaces. Every record type gets its own prefix so a
// prefix scan over one namespace never picks up records from another.
const (
	PostPrefix = "post:"
	UserPrefix = "user:"
)

// ErrEmptyKey is returned for operations on an empty key.
var ErrEmptyKey = errors.New("kv: empty key")

// Store is the keyed store contract. Get reports absence through its
// second return value rather than an error, since a missing key is a
// normal outcome for callers. Delete of an absent key is a no-op; the
// repository layer checks existence first when it needs to surface
// not-found. ScanPrefix returns values in unspecified order.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	ScanPrefix(ctx context.Context, prefix string) ([][]byte, error)
}

// AngelaMos | 2026
// repository.go

// Package localstore keeps client-side state (session token, pending apply
// marker, dismissed prompts) in a small key/value store.
package localstore

import "context"

// Repository is a byte-valued key/value store. Get on a missing key returns
// (nil, nil). Writes are last-writer-wins.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

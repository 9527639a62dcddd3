// Package session contains the durable key/value store backing the
// session manager. Token and user snapshot live under independent keys
// but are always written and removed together.
package session

import "context"

// Repository is a small key/value store over the local database.
// Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

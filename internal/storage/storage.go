// Package storage provides the durable local key-value store backing the
// session. The cart is deliberately never persisted here; it is re-fetched
// from the server each session.
package storage

import "errors"

// Logical keys persisted by the session store.
const (
	KeyUser    = "user"
	KeyProfile = "profile"
	KeyToken   = "authToken"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a flat string key-value store with synchronous reads.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Package storage hosts the per-client key-value store that backs every
// piece of client state: accounts, the logged in identity, the theme and
// the forum.
//
// Values are opaque strings, in practice JSON documents that are always
// written in full.
package storage

import "context"

// Storage is a single client's key-value store.
type Storage interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

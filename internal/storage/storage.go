// Package storage persists payment proof files (transfer receipts,
// e-wallet screenshots). The interface is backend-agnostic so a cloud
// object store can replace the local implementation without touching
// callers.
package storage

import (
	"context"
	"io"
	"path"

	"github.com/google/uuid"
)

// Store is a payment proof file backend.
type Store interface {
	// NewKey derives a fresh storage key for an uploaded file,
	// keeping the original extension.
	NewKey(filename string) string

	// Save writes the file under the given key.
	Save(ctx context.Context, key string, reader io.Reader) error

	// Open returns the file contents for download.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether a file is stored under the key and its
	// size in bytes.
	Exists(ctx context.Context, key string) (bool, int64, error)

	// Delete removes the file. Removing a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// URL returns the public download URL for a stored key.
	URL(key string) string
}

func newProofKey(filename string) string {
	return "proofs/" + uuid.New().String() + path.Ext(filename)
}

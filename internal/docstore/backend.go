// Package docstore persists the two inventory documents through a uniform
// three-verb backend contract. The backend is chosen once at startup and
// injected; nothing above this package branches on the storage medium.
package docstore

import "context"

// Document names. The file backend uses them as filenames, the key-value
// backend as row keys.
const (
	DocCategories = "productCategories.json"
	DocStock      = "stock.json"
)

// Backend is the raw storage contract shared by both storage media.
//
// Read returns ErrNotFound when the named document is absent. Delete of an
// absent document is a no-op success.
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
}

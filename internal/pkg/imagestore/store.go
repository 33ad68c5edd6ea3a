package imagestore

import (
	"context"
	"io"
)

// Store is the boundary to the image hosting backend. Objects are addressed
// by name; URL resolves a name to its public address.
type Store interface {
	// Save stores the object content under the given name.
	Save(ctx context.Context, name string, content io.Reader) error

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, name string) error

	// URL returns the public URL for the object name.
	URL(name string) string
}

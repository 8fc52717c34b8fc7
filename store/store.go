/*
   Abstracts the object store that holds the document corpus.
*/
package store

import (
	"context"

	"golang.org/x/xerrors"
)

// ErrNotFound is returned by Fetch when the named object does not exist.
var ErrNotFound = xerrors.New("object not found")

// Store is implemented by objects that can enumerate and retrieve the
// documents of a corpus.
type Store interface {
	// List returns the names of all objects under the specified prefix
	// in lexicographic order.
	List(ctx context.Context, prefix string) ([]string, error)

	// Fetch returns the raw contents of the named object. If the object
	// does not exist, Fetch returns an error that wraps ErrNotFound.
	Fetch(ctx context.Context, name string) ([]byte, error)
}

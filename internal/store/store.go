package store

import "context"

// Storage keys for the portal's top-level collections.
const (
	KeyInstitutes = "institutes"
	KeyStudents   = "students"
)

// Store persists JSON snapshots of the portal collections under string keys.
// There is no versioning and no migration: a blob that fails to parse on
// load is discarded by the caller in favour of the empty default collection.
type Store interface {
	// Load returns the blob stored under key. found is false when the key
	// has never been written.
	Load(ctx context.Context, key string) (blob []byte, found bool, err error)
	// Save writes the blob under key, replacing any previous value.
	Save(ctx context.Context, key string, blob []byte) error
}

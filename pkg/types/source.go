package types

import "context"

// Source fetches the initial record collection for a controller. A Source is
// read once; the controller never writes back to it.
type Source interface {
	// Fetch returns the full collection or an error. There is no partial
	// success: either every record is returned or none is.
	Fetch(ctx context.Context) (*Dataset, error)

	// URI identifies the source in logs and errors.
	URI() string
}

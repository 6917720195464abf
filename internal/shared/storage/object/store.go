package object

import "context"

// Uploader defines the contract for persisting raw uploads. Names are
// generated by the caller (UUID-based) and never checked for collisions;
// implementations overwrite silently when a name repeats.
type Uploader interface {
	Upload(ctx context.Context, name string, contentType string, data []byte) (url string, err error)
}

package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by Download when no object exists under the
// requested key.
var ErrObjectNotFound = errors.New("object not found")

// Object is a downloaded blob. The caller owns Body and must close it.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// ObjectStore is the gateway to the blob store. The production implementation
// is S3Store; tests substitute an in-memory one.
type ObjectStore interface {
	// EnsureBucket creates the configured bucket if it does not exist yet.
	// Called once at startup; creation is idempotent.
	EnsureBucket(ctx context.Context) error

	// Upload stores body under key with the declared content type.
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error

	// Download returns the object stored under key, or ErrObjectNotFound.
	Download(ctx context.Context, key string) (*Object, error)
}

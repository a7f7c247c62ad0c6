package util

import (
	"context"
	"errors"
)

// Storage categories used as object name prefixes.
const (
	CategoryTemplate    = "templates"
	CategoryFont        = "fonts"
	CategoryCertificate = "certificates"
)

// ErrObjectNotFound is returned by Retrieve for unknown paths
var ErrObjectNotFound = errors.New("object not found")

// ObjectStorage is the binary object store used for templates, fonts and
// generated certificates. Paths are opaque to callers.
type ObjectStorage interface {
	Store(ctx context.Context, data []byte, category string, key string, contentType string) (string, error)
	Retrieve(ctx context.Context, path string) ([]byte, error)
	Remove(ctx context.Context, path string) error
}

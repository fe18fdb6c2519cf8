// Package storage defines the Sink interface for persisting generated media
// artifacts. It abstracts the underlying backend so that callers can write
// audio to local disk or to an S3-compatible object store without changing
// application code.
package storage

import (
	"context"
	"io"
)

// Sink is a write-once store for named artifacts.
//
// Names are forward-slash separated and relative to the sink root.
// Implementations must be safe for concurrent use.
type Sink interface {
	// Put stores body under name and returns where it was stored: an
	// absolute file path for local sinks, an s3://bucket/key URI for S3.
	// An existing artifact with the same name is replaced.
	Put(ctx context.Context, name, contentType string, body io.Reader) (location string, err error)

	// Exists reports whether an artifact with the given name exists.
	Exists(ctx context.Context, name string) (bool, error)
}

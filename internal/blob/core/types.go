// Package core holds the storage contracts shared by the blob drivers.
// The report exporter writes artifacts through the Store interface and
// never sees a concrete backend.
package core

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver names a blob storage backend.
type Driver string

const (
	// DriverFilesystem stores artifacts under a local directory root.
	DriverFilesystem Driver = "fs"
	// DriverS3 targets S3 or an S3-compatible endpoint such as MinIO.
	DriverS3 Driver = "s3"
	// DriverMemory keeps artifacts in process memory, used in tests.
	DriverMemory Driver = "memory"
)

// PutOptions carries the optional attributes recorded with a new blob.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// SignedURLOptions configures PresignURL. Only GET is supported across
// the drivers; Expiry defaults to 15 minutes when zero.
type SignedURLOptions struct {
	Method string
	Expiry time.Duration
}

// Info describes a stored artifact.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
	URL          string            `json:"url,omitempty"`
}

// Store is the artifact storage contract. Put is create-only: writing
// an existing key fails, so export artifacts are immutable once stored.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	Delete(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	PresignURL(ctx context.Context, key string, opts SignedURLOptions) (string, error)
	Driver() Driver
}

// ErrUnsupported signals a capability the selected driver does not
// provide, such as presigning anything but a GET.
var ErrUnsupported = errors.New("blobstore: unsupported operation")

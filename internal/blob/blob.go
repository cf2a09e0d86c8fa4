// Package blob defines the storage abstraction used for report
// artifacts and selects a concrete backend from the environment.
package blob

import (
	"context"
	"fmt"
	"os"

	blobcore "marketcore/internal/blob/core"
	fsblob "marketcore/internal/infra/blob/fs"
	memblob "marketcore/internal/infra/blob/memory"
	s3blob "marketcore/internal/infra/blob/s3"
)

// Driver identifies a concrete blob storage backend implementation.
type Driver = blobcore.Driver

const (
	// DriverFilesystem is the local filesystem implementation.
	DriverFilesystem = blobcore.DriverFilesystem
	// DriverS3 is an S3 / MinIO compatible implementation.
	DriverS3 = blobcore.DriverS3
	// DriverMemory is the in-memory implementation used in tests.
	DriverMemory = blobcore.DriverMemory
)

type (
	// PutOptions carries the optional attributes recorded with a new blob.
	PutOptions = blobcore.PutOptions
	// SignedURLOptions configures PresignURL.
	SignedURLOptions = blobcore.SignedURLOptions
	// Info describes a stored artifact.
	Info = blobcore.Info
	// Store is the artifact storage contract.
	Store = blobcore.Store
)

// ErrUnsupported is returned when an optional capability is not available.
var ErrUnsupported = blobcore.ErrUnsupported

// NewMemory returns an in-memory store, primarily for tests.
func NewMemory() Store { return memblob.New() }

// Open selects a blob.Store implementation using environment variables.
//
//	MARKETCORE_BLOB_DRIVER: fs|s3|memory (default fs)
//	MARKETCORE_BLOB_FS_ROOT: directory root when driver=fs (default ./blobdata)
//	(S3 specific variables documented in the s3 driver)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("MARKETCORE_BLOB_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		root := os.Getenv("MARKETCORE_BLOB_FS_ROOT")
		return fsblob.New(root)
	case DriverS3:
		return s3blob.OpenFromEnv(ctx)
	case DriverMemory:
		return memblob.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}

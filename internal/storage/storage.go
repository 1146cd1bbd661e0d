package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations. The
// relational store remains the source of truth for metadata; this layer only
// moves bytes and mints URLs.
type FileStorage interface {
	// Upload writes an object and returns its public URL.
	Upload(ctx context.Context, objectKey string, contentType string, data []byte) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error

	// Exists reports whether an object is present.
	Exists(ctx context.Context, objectKey string) (bool, error)

	// List returns the object keys under the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// GeneratePresignedUploadURL creates a temporary URL that allows PUT
	// requests for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for downloading/viewing an object.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}

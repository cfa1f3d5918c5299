// Package storage holds listing images behind a pluggable store: Postgres
// bytea for self-contained deployments, an S3-compatible bucket otherwise.
package storage

import "context"

// ImageStore persists at most one image per listing, keyed by house ID.
type ImageStore interface {
	// Save stores (or replaces) the image for a house.
	Save(ctx context.Context, houseID string, data []byte, contentType string) error
	// Load returns the image bytes and content type, or common.ErrorNotFound.
	Load(ctx context.Context, houseID string) ([]byte, string, error)
	// Delete removes the image if present. Deleting a missing image is not
	// an error.
	Delete(ctx context.Context, houseID string) error
}

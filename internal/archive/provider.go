// Package archive defines the blob storage provider used to keep raw HTML
// snapshots of fetched detail pages. The abstraction keeps the harvester
// independent of a specific backend (Google Cloud Storage, the local
// filesystem, or an in-memory store for tests).
package archive

import (
	"context"
	"crypto/sha256"
	"fmt"
	"path"
	"time"
)

// Provider is the common interface for a blob storage backend.
type Provider interface {
	// Save uploads data to the given object path/key in the blob store.
	Save(ctx context.Context, objectName string, data []byte) error
}

// NoOpProvider discards every snapshot. It is the default when archiving is
// not configured.
type NoOpProvider struct{}

// Save for NoOpProvider does nothing and always returns nil.
func (NoOpProvider) Save(_ context.Context, _ string, _ []byte) error { return nil }

// ObjectName derives a stable object key for a page snapshot: the fetch date
// and a hash of the URL, so re-harvesting the same page on the same day
// overwrites rather than accumulates.
func ObjectName(url string, fetchedAt time.Time) string {
	urlHash := fmt.Sprintf("%x", sha256.Sum256([]byte(url)))
	return path.Join(
		"pages",
		fetchedAt.UTC().Format("2006-01-02"),
		fmt.Sprintf("%s.html", urlHash),
	)
}

package archive

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
)

// GCSProvider stores snapshots in a Google Cloud Storage bucket.
// Authentication is handled via Application Default Credentials.
type GCSProvider struct {
	client *storage.Client
	bucket string
	logger *zap.Logger
}

// NewGCSProvider initializes a GCS client and verifies bucket access, so a
// misconfigured bucket fails at startup rather than mid-run.
func NewGCSProvider(ctx context.Context, bucket string, logger *zap.Logger) (*GCSProvider, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	if _, err := client.Bucket(bucket).Attrs(ctx); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			logger.Warn("close gcs client after bucket check failure", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("get gcs bucket %q attributes: %w", bucket, err)
	}
	return &GCSProvider{client: client, bucket: bucket, logger: logger}, nil
}

// Save uploads data to the given object in the bucket.
func (p *GCSProvider) Save(ctx context.Context, objectName string, data []byte) error {
	wc := p.client.Bucket(p.bucket).Object(objectName).NewWriter(ctx)
	if _, err := wc.Write(data); err != nil {
		if closeErr := wc.Close(); closeErr != nil {
			p.logger.Warn("close gcs writer after write failure", zap.Error(closeErr))
		}
		return fmt.Errorf("write gcs object %s: %w", objectName, err)
	}
	// Close finalizes the upload and flushes buffered data.
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close gcs writer for object %s: %w", objectName, err)
	}
	return nil
}

// Close releases the underlying client.
func (p *GCSProvider) Close() error {
	if err := p.client.Close(); err != nil {
		return fmt.Errorf("close gcs client: %w", err)
	}
	return nil
}

package gcs

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// posterCacheControl lets CDNs keep posters; object names are unique per upload.
const posterCacheControl = "public, max-age=86400"

// PosterStore uploads event posters to a single bucket.
type PosterStore struct {
	client *storage.Client
	bucket string
}

// NewPosterStore returns nil when GCS is not configured so callers can treat
// poster uploads as disabled.
func NewPosterStore(client *storage.Client, bucket string) *PosterStore {
	if client == nil || bucket == "" {
		return nil
	}
	return &PosterStore{client: client, bucket: bucket}
}

// Upload streams r into objectPath and returns the object's public URL.
func (p *PosterStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	w := p.client.Bucket(p.bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = posterCacheControl
	w.ChunkSize = 0 // posters are small; send in one request
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", objectPath, err)
	}
	return PublicURL(p.bucket, objectPath), nil
}

// PublicURL is the storage.googleapis.com address of an object in a public bucket.
func PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}

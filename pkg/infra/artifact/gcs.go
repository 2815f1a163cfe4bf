// Package artifact implements stores for intermediate run artifacts.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/tailor/pkg/domain/types"
	"google.golang.org/api/option"
)

// GCS stores artifacts as objects in a Cloud Storage bucket. Retention is
// handled by bucket lifecycle rules, not by this client.
type GCS struct {
	client *storage.Client
	bucket string
}

// NewGCS creates a Cloud Storage artifact store using application default
// credentials. Extra client options are passed through, which lets tests
// point at an emulator.
func NewGCS(ctx context.Context, bucket string, opts ...option.ClientOption) (*GCS, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCS{client: client, bucket: bucket}, nil
}

// Put stores data under the key, overwriting any existing object
func (x *GCS) Put(ctx context.Context, key string, data []byte) error {
	w := x.client.Bucket(x.bucket).Object(key).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write gs://%s/%s: %w", x.bucket, key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize gs://%s/%s: %w", x.bucket, key, err)
	}
	return nil
}

// Get returns the object stored under the key
func (x *GCS) Get(ctx context.Context, key string) ([]byte, error) {
	r, err := x.client.Bucket(x.bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("gs://%s/%s: %w", x.bucket, key, types.ErrArtifactNotFound)
		}
		return nil, fmt.Errorf("failed to open gs://%s/%s: %w", x.bucket, key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read gs://%s/%s: %w", x.bucket, key, err)
	}
	return data, nil
}

// Close releases the underlying client
func (x *GCS) Close() error {
	return x.client.Close()
}

package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
)

// GCS stores attachment bytes in a Google Cloud Storage bucket under
// {prefix}/{companyID}/{reportID}/{fileName}.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ Service = &GCS{}

type GCSOption func(*GCS)

func WithObjectPrefix(prefix string) GCSOption {
	return func(g *GCS) {
		g.prefix = prefix
	}
}

func NewGCS(ctx context.Context, bucket string, opts ...GCSOption) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	g := &GCS{
		client: client,
		bucket: bucket,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func (g *GCS) objectPath(companyID, reportID, fileName string) string {
	if g.prefix != "" {
		return fmt.Sprintf("%s/%s/%s/%s", g.prefix, companyID, reportID, fileName)
	}
	return fmt.Sprintf("%s/%s/%s", companyID, reportID, fileName)
}

func (g *GCS) Put(ctx context.Context, companyID, reportID, fileName string, r io.Reader) (string, error) {
	path := g.objectPath(companyID, reportID, fileName)

	w := g.client.Bucket(g.bucket).Object(path).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to write object", goerr.V("path", path))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize object", goerr.V("path", path))
	}

	return path, nil
}

func (g *GCS) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

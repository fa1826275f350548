package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/service/storage"
	"github.com/secmon-lab/aletheia/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Storage holds CLI flags for attachment storage configuration
type Storage struct {
	backend string
	bucket  string
	prefix  string
}

// Flags returns CLI flags for storage configuration
func (s *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-backend",
			Usage:       "Attachment storage backend type (gcs or memory)",
			Value:       "gcs",
			Sources:     cli.EnvVars("ALETHEIA_STORAGE_BACKEND"),
			Destination: &s.backend,
		},
		&cli.StringFlag{
			Name:        "storage-bucket",
			Usage:       "Cloud Storage bucket for attachments (required when using gcs backend)",
			Sources:     cli.EnvVars("ALETHEIA_STORAGE_BUCKET"),
			Destination: &s.bucket,
		},
		&cli.StringFlag{
			Name:        "storage-prefix",
			Usage:       "Object name prefix inside the bucket",
			Sources:     cli.EnvVars("ALETHEIA_STORAGE_PREFIX"),
			Destination: &s.prefix,
		},
	}
}

// Configure initializes the attachment storage backend
func (s *Storage) Configure(ctx context.Context) (storage.Service, error) {
	switch s.backend {
	case "gcs":
		if s.bucket == "" {
			return nil, goerr.New("storage-bucket is required when using gcs backend")
		}
		var opts []storage.GCSOption
		if s.prefix != "" {
			opts = append(opts, storage.WithObjectPrefix(s.prefix))
		}
		svc, err := storage.NewGCS(ctx, s.bucket, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize GCS storage")
		}
		logging.Default().Info("Using Cloud Storage for attachments",
			"bucket", s.bucket,
			"prefix", s.prefix,
		)
		return svc, nil

	case "memory":
		logging.Default().Info("Using in-memory attachment storage (development mode)")
		return storage.NewMemory(), nil

	default:
		return nil, goerr.New("invalid storage backend", goerr.V("backend", s.backend))
	}
}

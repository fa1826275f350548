package storage

import (
	"context"
	"io"
)

// MaxAttachmentSize is the hard per-file limit. Oversize files are
// rejected individually, never as a whole batch.
const MaxAttachmentSize = 10 << 20 // 10 MB

// Service stores attachment bytes and returns the storage path that the
// engine persists. The engine never reads bytes back; downloads are
// served by the surrounding application.
type Service interface {
	Put(ctx context.Context, companyID, reportID, fileName string, r io.Reader) (string, error)
}

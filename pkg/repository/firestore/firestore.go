package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/interfaces"
)

// Firestore is the production repository backend
type Firestore struct {
	client     *firestore.Client
	report     *reportRepository
	comment    *commentRepository
	attachment *attachmentRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes every collection name, for sharing a
// database between environments.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.report.collectionPrefix = prefix
		f.comment.collectionPrefix = prefix
		f.attachment.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:     client,
		report:     newReportRepository(client),
		comment:    newCommentRepository(client),
		attachment: newAttachmentRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Report() interfaces.ReportRepository {
	return f.report
}

func (f *Firestore) Comment() interfaces.CommentRepository {
	return f.comment
}

func (f *Firestore) Attachment() interfaces.AttachmentRepository {
	return f.attachment
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

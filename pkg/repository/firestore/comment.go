package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
	"google.golang.org/api/iterator"
)

type commentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCommentRepository(client *firestore.Client) *commentRepository {
	return &commentRepository{client: client}
}

func (r *commentRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_comments"
	}
	return "comments"
}

type commentDoc struct {
	ID        string    `firestore:"id"`
	ReportID  string    `firestore:"report_id"`
	AuthorID  string    `firestore:"author_id"`
	Body      string    `firestore:"body"`
	Internal  bool      `firestore:"internal"`
	CompanyID string    `firestore:"company_id"`
	CreatedAt time.Time `firestore:"created_at"`
}

func (d *commentDoc) toModel() *model.Comment {
	return &model.Comment{
		ID:        d.ID,
		ReportID:  d.ReportID,
		AuthorID:  d.AuthorID,
		Body:      d.Body,
		Internal:  d.Internal,
		CreatedAt: d.CreatedAt,
	}
}

func (r *commentRepository) Create(ctx context.Context, companyID string, c *model.Comment) (*model.Comment, error) {
	doc := &commentDoc{
		ID:        uuid.NewString(),
		ReportID:  c.ReportID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		Internal:  c.Internal,
		CompanyID: companyID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.client.Collection(r.collection()).Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create comment", goerr.V("report_id", c.ReportID))
	}

	return doc.toModel(), nil
}

func (r *commentRepository) ListByReport(ctx context.Context, companyID, reportID string) ([]*model.Comment, error) {
	iter := r.client.Collection(r.collection()).
		Where("report_id", "==", reportID).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var comments []*model.Comment
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate comments", goerr.V("report_id", reportID))
		}

		var doc commentDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode comment", goerr.V("report_id", reportID))
		}
		if doc.CompanyID != companyID {
			continue
		}
		comments = append(comments, doc.toModel())
	}

	return comments, nil
}

type attachmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAttachmentRepository(client *firestore.Client) *attachmentRepository {
	return &attachmentRepository{client: client}
}

func (r *attachmentRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_attachments"
	}
	return "attachments"
}

type attachmentDoc struct {
	ID          string    `firestore:"id"`
	ReportID    string    `firestore:"report_id"`
	UploaderID  string    `firestore:"uploader_id"`
	FileName    string    `firestore:"file_name"`
	StoragePath string    `firestore:"storage_path"`
	Size        int64     `firestore:"size"`
	ContentType string    `firestore:"content_type"`
	CompanyID   string    `firestore:"company_id"`
	CreatedAt   time.Time `firestore:"created_at"`
}

func (d *attachmentDoc) toModel() *model.Attachment {
	return &model.Attachment{
		ID:          d.ID,
		ReportID:    d.ReportID,
		UploaderID:  d.UploaderID,
		FileName:    d.FileName,
		StoragePath: d.StoragePath,
		Size:        d.Size,
		ContentType: d.ContentType,
		CreatedAt:   d.CreatedAt,
	}
}

func (r *attachmentRepository) Create(ctx context.Context, companyID string, a *model.Attachment) (*model.Attachment, error) {
	doc := &attachmentDoc{
		ID:          uuid.NewString(),
		ReportID:    a.ReportID,
		UploaderID:  a.UploaderID,
		FileName:    a.FileName,
		StoragePath: a.StoragePath,
		Size:        a.Size,
		ContentType: a.ContentType,
		CompanyID:   companyID,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := r.client.Collection(r.collection()).Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create attachment", goerr.V("report_id", a.ReportID))
	}

	return doc.toModel(), nil
}

func (r *attachmentRepository) ListByReport(ctx context.Context, companyID, reportID string) ([]*model.Attachment, error) {
	iter := r.client.Collection(r.collection()).
		Where("report_id", "==", reportID).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var attachments []*model.Attachment
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate attachments", goerr.V("report_id", reportID))
		}

		var doc attachmentDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode attachment", goerr.V("report_id", reportID))
		}
		if doc.CompanyID != companyID {
			continue
		}
		attachments = append(attachments, doc.toModel())
	}

	return attachments, nil
}

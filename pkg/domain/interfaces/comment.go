package interfaces

import (
	"context"

	"github.com/secmon-lab/aletheia/pkg/domain/model"
)

// CommentRepository defines the interface for Comment data access.
// Comments accumulate monotonically; there is no delete in the normal
// flow.
type CommentRepository interface {
	// Create persists a new comment with a generated ID and timestamp
	Create(ctx context.Context, companyID string, c *model.Comment) (*model.Comment, error)

	// ListByReport returns all comments of a report, oldest first.
	// Visibility filtering is the caller's concern.
	ListByReport(ctx context.Context, companyID, reportID string) ([]*model.Comment, error)
}

// AttachmentRepository defines the interface for Attachment metadata
type AttachmentRepository interface {
	// Create persists attachment metadata with a generated ID and timestamp
	Create(ctx context.Context, companyID string, a *model.Attachment) (*model.Attachment, error)

	// ListByReport returns all attachments of a report, oldest first
	ListByReport(ctx context.Context, companyID, reportID string) ([]*model.Attachment, error)
}

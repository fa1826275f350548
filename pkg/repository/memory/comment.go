package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
)

type commentRepository struct {
	mu       sync.RWMutex
	comments map[string]map[string][]*model.Comment
}

func newCommentRepository() *commentRepository {
	return &commentRepository{
		comments: make(map[string]map[string][]*model.Comment),
	}
}

func copyComment(src *model.Comment) *model.Comment {
	copied := *src
	return &copied
}

func (r *commentRepository) Create(ctx context.Context, companyID string, c *model.Comment) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.comments[companyID]; !exists {
		r.comments[companyID] = make(map[string][]*model.Comment)
	}

	created := copyComment(c)
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()

	r.comments[companyID][created.ReportID] = append(r.comments[companyID][created.ReportID], created)
	return copyComment(created), nil
}

func (r *commentRepository) ListByReport(ctx context.Context, companyID, reportID string) ([]*model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	company, exists := r.comments[companyID]
	if !exists {
		return []*model.Comment{}, nil
	}

	entries := company[reportID]
	comments := make([]*model.Comment, 0, len(entries))
	for _, c := range entries {
		comments = append(comments, copyComment(c))
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})

	return comments, nil
}

type attachmentRepository struct {
	mu          sync.RWMutex
	attachments map[string]map[string][]*model.Attachment
}

func newAttachmentRepository() *attachmentRepository {
	return &attachmentRepository{
		attachments: make(map[string]map[string][]*model.Attachment),
	}
}

func copyAttachment(src *model.Attachment) *model.Attachment {
	copied := *src
	return &copied
}

func (r *attachmentRepository) Create(ctx context.Context, companyID string, a *model.Attachment) (*model.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.attachments[companyID]; !exists {
		r.attachments[companyID] = make(map[string][]*model.Attachment)
	}

	created := copyAttachment(a)
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()

	r.attachments[companyID][created.ReportID] = append(r.attachments[companyID][created.ReportID], created)
	return copyAttachment(created), nil
}

func (r *attachmentRepository) ListByReport(ctx context.Context, companyID, reportID string) ([]*model.Attachment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	company, exists := r.attachments[companyID]
	if !exists {
		return []*model.Attachment{}, nil
	}

	entries := company[reportID]
	attachments := make([]*model.Attachment, 0, len(entries))
	for _, a := range entries {
		attachments = append(attachments, copyAttachment(a))
	}

	return attachments, nil
}

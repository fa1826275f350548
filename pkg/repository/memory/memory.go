package memory

import (
	"github.com/secmon-lab/aletheia/pkg/domain/interfaces"
)

// Memory is an in-memory repository for development and tests
type Memory struct {
	report     *reportRepository
	comment    *commentRepository
	attachment *attachmentRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		report:     newReportRepository(),
		comment:    newCommentRepository(),
		attachment: newAttachmentRepository(),
	}
}

func (m *Memory) Report() interfaces.ReportRepository {
	return m.report
}

func (m *Memory) Comment() interfaces.CommentRepository {
	return m.comment
}

func (m *Memory) Attachment() interfaces.AttachmentRepository {
	return m.attachment
}

func (m *Memory) Close() error {
	return nil
}

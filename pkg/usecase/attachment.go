package usecase

import (
	"context"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/interfaces"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
	"github.com/secmon-lab/aletheia/pkg/service/storage"
)

type AttachmentUseCase struct {
	repo       interfaces.Repository
	storageSvc storage.Service
}

func NewAttachmentUseCase(repo interfaces.Repository, storageSvc storage.Service) *AttachmentUseCase {
	return &AttachmentUseCase{
		repo:       repo,
		storageSvc: storageSvc,
	}
}

// UploadFile is one file in an upload request
type UploadFile struct {
	Name        string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// UploadFailure records one file rejected during an upload
type UploadFailure struct {
	Name string
	Err  error
}

// UploadResult lists stored attachments and per-file failures. One
// oversize file is rejected individually while the rest proceed.
type UploadResult struct {
	Saved  []*model.Attachment
	Failed []UploadFailure
}

// Upload stores attachment files for a report after checking the
// actor's authority and the finalization lock.
func (uc *AttachmentUseCase) Upload(ctx context.Context, companyID, reportID string, files []UploadFile) (*UploadResult, error) {
	actor, err := actorFor(ctx)
	if err != nil {
		return nil, err
	}

	report, err := uc.repo.Report().Get(ctx, companyID, reportID)
	if err != nil {
		return nil, wrapGetErr(err, reportID)
	}

	if !model.CanAttach(actor.Role, report.Finalized()) {
		return nil, goerr.Wrap(model.ErrForbidden, "attachments are locked for this report",
			goerr.V("role", actor.Role),
			goerr.V("status", report.Status))
	}

	return storeFiles(ctx, uc.repo, uc.storageSvc, companyID, reportID, actor.ID, files)
}

// ListAttachments returns the attachment metadata of a report
func (uc *AttachmentUseCase) ListAttachments(ctx context.Context, companyID, reportID string) ([]*model.Attachment, error) {
	attachments, err := uc.repo.Attachment().ListByReport(ctx, companyID, reportID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list attachments", goerr.V(ReportIDKey, reportID))
	}
	return attachments, nil
}

// storeFiles validates, sanitizes and stores each file independently.
// Size violations are collected per file; storage faults abort.
func storeFiles(ctx context.Context, repo interfaces.Repository, storageSvc storage.Service, companyID, reportID, uploaderID string, files []UploadFile) (*UploadResult, error) {
	if storageSvc == nil {
		return nil, goerr.New("file storage is not configured")
	}

	result := &UploadResult{}
	for _, f := range files {
		if f.Size > storage.MaxAttachmentSize {
			result.Failed = append(result.Failed, UploadFailure{
				Name: f.Name,
				Err: goerr.Wrap(model.ErrValidation, "attachment exceeds size limit",
					goerr.V("file", f.Name),
					goerr.V("size", f.Size),
					goerr.V("max", storage.MaxAttachmentSize)),
			})
			continue
		}

		sanitized := storage.SanitizeFileName(f.Name)
		path, err := storageSvc.Put(ctx, companyID, reportID, sanitized, f.Reader)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to store attachment", goerr.V("file", f.Name))
		}

		created, err := repo.Attachment().Create(ctx, companyID, &model.Attachment{
			ReportID:    reportID,
			UploaderID:  uploaderID,
			FileName:    sanitized,
			StoragePath: path,
			Size:        f.Size,
			ContentType: f.ContentType,
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to record attachment", goerr.V("file", f.Name))
		}

		result.Saved = append(result.Saved, created)
	}

	return result, nil
}

package usecase_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
	"github.com/secmon-lab/aletheia/pkg/domain/types"
	"github.com/secmon-lab/aletheia/pkg/repository/memory"
	"github.com/secmon-lab/aletheia/pkg/service/storage"
	"github.com/secmon-lab/aletheia/pkg/usecase"
)

func uploadFixture(name, body string) usecase.UploadFile {
	return usecase.UploadFile{
		Name:        name,
		Size:        int64(len(body)),
		ContentType: "text/plain",
		Reader:      strings.NewReader(body),
	}
}

func TestAttachmentUseCase_Upload(t *testing.T) {
	t.Run("stores file with sanitized name", func(t *testing.T) {
		store := storage.NewMemory()
		uc := usecase.New(memory.New(), testRegistry(), usecase.WithStorage(store))
		report := setupReport(t, uc)

		result, err := uc.Attachment.Upload(actorCtx(types.RoleCorporateManager), testCompanyID, report.ID, []usecase.UploadFile{
			uploadFixture("relatório (rev 2).txt", "evidence"),
		})
		gt.NoError(t, err).Required()
		gt.A(t, result.Saved).Length(1)
		gt.A(t, result.Failed).Length(0)

		saved := result.Saved[0]
		gt.S(t, saved.FileName).Equal("relatorio-rev-2-.txt")
		gt.S(t, saved.StoragePath).Contains(report.ID)

		data, ok := store.Get(saved.StoragePath)
		gt.B(t, ok).True()
		gt.S(t, string(data)).Equal("evidence")
	})

	t.Run("oversize file fails alone, the rest proceed", func(t *testing.T) {
		store := storage.NewMemory()
		uc := usecase.New(memory.New(), testRegistry(), usecase.WithStorage(store))
		report := setupReport(t, uc)

		big := uploadFixture("huge.bin", "x")
		big.Size = storage.MaxAttachmentSize + 1

		result, err := uc.Attachment.Upload(actorCtx(types.RoleAdmin), testCompanyID, report.ID, []usecase.UploadFile{
			big,
			uploadFixture("small.txt", "ok"),
		})
		gt.NoError(t, err).Required()
		gt.A(t, result.Saved).Length(1)
		gt.A(t, result.Failed).Length(1)
		gt.S(t, result.Failed[0].Name).Equal("huge.bin")
		gt.B(t, errors.Is(result.Failed[0].Err, model.ErrValidation)).True()
	})

	t.Run("finalized report locks uploads for non-admin", func(t *testing.T) {
		store := storage.NewMemory()
		uc := usecase.New(memory.New(), testRegistry(), usecase.WithStorage(store))
		report := setupReport(t, uc)
		advance(t, uc, report.ID, types.StatusCorporateApproval)
		_, err := uc.Transition.Decide(actorCtx(types.RoleCorporateManager), testCompanyID, report.ID, false, "unfounded", nil)
		gt.NoError(t, err).Required()

		_, err = uc.Attachment.Upload(actorCtx(types.RoleApproverManager), testCompanyID, report.ID, []usecase.UploadFile{
			uploadFixture("late.txt", "late"),
		})
		gt.B(t, errors.Is(err, model.ErrForbidden)).True()

		result, err := uc.Attachment.Upload(actorCtx(types.RoleAdmin), testCompanyID, report.ID, []usecase.UploadFile{
			uploadFixture("late.txt", "late"),
		})
		gt.NoError(t, err).Required()
		gt.A(t, result.Saved).Length(1)
	})

	t.Run("upload without storage backend fails", func(t *testing.T) {
		uc := usecase.New(memory.New(), testRegistry())
		report := setupReport(t, uc)

		_, err := uc.Attachment.Upload(actorCtx(types.RoleAdmin), testCompanyID, report.ID, []usecase.UploadFile{
			uploadFixture("a.txt", "a"),
		})
		gt.Error(t, err)
	})
}

func TestAttachmentUseCase_ListAttachments(t *testing.T) {
	store := storage.NewMemory()
	uc := usecase.New(memory.New(), testRegistry(), usecase.WithStorage(store))
	report := setupReport(t, uc)

	_, err := uc.Attachment.Upload(actorCtx(types.RoleAdmin), testCompanyID, report.ID, []usecase.UploadFile{
		uploadFixture("one.txt", "1"),
		uploadFixture("two.txt", "22"),
	})
	gt.NoError(t, err).Required()

	attachments, err := uc.Attachment.ListAttachments(actorCtx(types.RoleAdmin), testCompanyID, report.ID)
	gt.NoError(t, err).Required()
	gt.A(t, attachments).Length(2)
	gt.N(t, attachments[1].Size).Equal(int64(2))
}

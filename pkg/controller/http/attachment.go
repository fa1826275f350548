package http

import (
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
	"github.com/secmon-lab/aletheia/pkg/domain/model/auth"
	"github.com/secmon-lab/aletheia/pkg/usecase"
	"github.com/secmon-lab/aletheia/pkg/utils/safe"
)

type attachmentResponse struct {
	ID          string    `json:"id"`
	ReportID    string    `json:"report_id"`
	UploaderID  string    `json:"uploader_id"`
	FileName    string    `json:"file_name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

func toAttachmentResponse(a *model.Attachment) *attachmentResponse {
	return &attachmentResponse{
		ID:          a.ID,
		ReportID:    a.ReportID,
		UploaderID:  a.UploaderID,
		FileName:    a.FileName,
		Size:        a.Size,
		ContentType: a.ContentType,
		CreatedAt:   a.CreatedAt,
	}
}

type uploadResponse struct {
	Saved  []*attachmentResponse `json:"saved"`
	Failed []uploadFailure       `json:"failed,omitempty"`
}

type uploadFailure struct {
	FileName string `json:"file_name"`
	Error    string `json:"error"`
}

func toUploadResponse(result *usecase.UploadResult) *uploadResponse {
	resp := &uploadResponse{
		Saved: make([]*attachmentResponse, len(result.Saved)),
	}
	for i, a := range result.Saved {
		resp.Saved[i] = toAttachmentResponse(a)
	}
	for _, f := range result.Failed {
		resp.Failed = append(resp.Failed, uploadFailure{
			FileName: f.Name,
			Error:    f.Err.Error(),
		})
	}
	return resp
}

func uploadAttachmentsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.ActorFromContext(r.Context())
		if err != nil {
			handleError(r, w, goerr.Wrap(model.ErrForbidden, "no acting identity"))
			return
		}

		if err := r.ParseMultipartForm(maxDecisionMemory); err != nil {
			handleError(r, w, goerr.Wrap(model.ErrValidation, "invalid multipart request", goerr.V("cause", err.Error())))
			return
		}

		var files []usecase.UploadFile
		var closers []multipart.File
		defer func() {
			for _, f := range closers {
				safe.Close(r.Context(), f)
			}
		}()

		for _, header := range r.MultipartForm.File["files"] {
			f, err := header.Open()
			if err != nil {
				handleError(r, w, goerr.Wrap(model.ErrValidation, "failed to open uploaded file", goerr.V("file", header.Filename)))
				return
			}
			closers = append(closers, f)
			files = append(files, usecase.UploadFile{
				Name:        header.Filename,
				Size:        header.Size,
				ContentType: header.Header.Get("Content-Type"),
				Reader:      f,
			})
		}

		if len(files) == 0 {
			handleError(r, w, goerr.Wrap(model.ErrValidation, "no files in request"))
			return
		}

		result, err := uc.Attachment.Upload(r.Context(), actor.CompanyID, chi.URLParam(r, "reportID"), files)
		if err != nil {
			handleError(r, w, err)
			return
		}

		respondJSON(r, w, http.StatusCreated, toUploadResponse(result))
	}
}

func listAttachmentsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.ActorFromContext(r.Context())
		if err != nil {
			handleError(r, w, goerr.Wrap(model.ErrForbidden, "no acting identity"))
			return
		}

		attachments, err := uc.Attachment.ListAttachments(r.Context(), actor.CompanyID, chi.URLParam(r, "reportID"))
		if err != nil {
			handleError(r, w, err)
			return
		}

		resp := make([]*attachmentResponse, len(attachments))
		for i, a := range attachments {
			resp[i] = toAttachmentResponse(a)
		}
		respondJSON(r, w, http.StatusOK, map[string]any{"attachments": resp})
	}
}

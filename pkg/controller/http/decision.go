package http

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
	"github.com/secmon-lab/aletheia/pkg/domain/model/auth"
	"github.com/secmon-lab/aletheia/pkg/usecase"
	"github.com/secmon-lab/aletheia/pkg/utils/safe"
)

// maxDecisionMemory bounds the in-memory part of multipart parsing;
// larger files spill to temporary files.
const maxDecisionMemory = 8 << 20

type decisionRequest struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment"`
}

// decisionHandler applies the corporate approval decision. The request
// is JSON for a bare decision, or multipart/form-data when evidence
// files accompany the justification.
func decisionHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.ActorFromContext(r.Context())
		if err != nil {
			handleError(r, w, goerr.Wrap(model.ErrForbidden, "no acting identity"))
			return
		}

		reportID := chi.URLParam(r, "reportID")

		var req decisionRequest
		var files []usecase.UploadFile
		var closers []multipart.File

		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			if err := r.ParseMultipartForm(maxDecisionMemory); err != nil {
				handleError(r, w, goerr.Wrap(model.ErrValidation, "invalid multipart request", goerr.V("cause", err.Error())))
				return
			}
			req.Approve, _ = strconv.ParseBool(r.FormValue("approve"))
			req.Comment = r.FormValue("comment")

			if r.MultipartForm != nil {
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
			}
		} else {
			if err := decodeJSON(r, &req); err != nil {
				handleError(r, w, err)
				return
			}
		}
		defer func() {
			for _, f := range closers {
				safe.Close(r.Context(), f)
			}
		}()

		result, err := uc.Transition.Decide(r.Context(), actor.CompanyID, reportID, req.Approve, req.Comment, files)
		if err != nil {
			handleError(r, w, err)
			return
		}

		resp := map[string]any{
			"report": toReportResponse(result.Report, nil),
		}
		if result.Attachments != nil {
			resp["attachments"] = toUploadResponse(result.Attachments)
		}
		respondJSON(r, w, http.StatusOK, resp)
	}
}

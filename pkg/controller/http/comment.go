package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
	"github.com/secmon-lab/aletheia/pkg/domain/model/auth"
	"github.com/secmon-lab/aletheia/pkg/usecase"
)

type commentResponse struct {
	ID        string    `json:"id"`
	ReportID  string    `json:"report_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	Internal  bool      `json:"internal"`
	CreatedAt time.Time `json:"created_at"`
}

func toCommentResponse(c *model.Comment) *commentResponse {
	return &commentResponse{
		ID:        c.ID,
		ReportID:  c.ReportID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		Internal:  c.Internal,
		CreatedAt: c.CreatedAt,
	}
}

type addCommentRequest struct {
	Body     string `json:"body"`
	Internal bool   `json:"internal"`
}

func addCommentHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.ActorFromContext(r.Context())
		if err != nil {
			handleError(r, w, goerr.Wrap(model.ErrForbidden, "no acting identity"))
			return
		}

		var req addCommentRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(r, w, err)
			return
		}

		created, err := uc.Comment.AddComment(r.Context(), actor.CompanyID, chi.URLParam(r, "reportID"), req.Body, req.Internal)
		if err != nil {
			handleError(r, w, err)
			return
		}

		respondJSON(r, w, http.StatusCreated, toCommentResponse(created))
	}
}

func listCommentsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.ActorFromContext(r.Context())
		if err != nil {
			handleError(r, w, goerr.Wrap(model.ErrForbidden, "no acting identity"))
			return
		}

		comments, err := uc.Comment.ListComments(r.Context(), actor.CompanyID, chi.URLParam(r, "reportID"))
		if err != nil {
			handleError(r, w, err)
			return
		}

		resp := make([]*commentResponse, len(comments))
		for i, c := range comments {
			resp[i] = toCommentResponse(c)
		}
		respondJSON(r, w, http.StatusOK, map[string]any{"comments": resp})
	}
}

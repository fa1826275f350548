package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/interfaces"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
)

type CommentUseCase struct {
	repo interfaces.Repository
}

func NewCommentUseCase(repo interfaces.Repository) *CommentUseCase {
	return &CommentUseCase{repo: repo}
}

// AddComment creates a comment after checking the finalization lock
// and the actor's authority over the internal flag.
func (uc *CommentUseCase) AddComment(ctx context.Context, companyID, reportID, body string, internal bool) (*model.Comment, error) {
	actor, err := actorFor(ctx)
	if err != nil {
		return nil, err
	}

	if err := model.ValidateCommentBody(body); err != nil {
		return nil, err
	}

	report, err := uc.repo.Report().Get(ctx, companyID, reportID)
	if err != nil {
		return nil, wrapGetErr(err, reportID)
	}

	if !model.CanComment(actor.Role, report.Finalized()) {
		return nil, goerr.Wrap(model.ErrForbidden, "comments are locked for this report",
			goerr.V("role", actor.Role),
			goerr.V("status", report.Status))
	}

	if internal && !model.CanMarkInternal(actor.Role) {
		return nil, goerr.Wrap(model.ErrForbidden, "role may not mark comments internal",
			goerr.V("role", actor.Role))
	}

	created, err := uc.repo.Comment().Create(ctx, companyID, &model.Comment{
		ReportID: reportID,
		AuthorID: actor.ID,
		Body:     body,
		Internal: internal,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create comment", goerr.V(ReportIDKey, reportID))
	}

	return created, nil
}

// ListComments returns the comments visible to the acting role. The
// same filter backs the comment counts on list screens.
func (uc *CommentUseCase) ListComments(ctx context.Context, companyID, reportID string) ([]*model.Comment, error) {
	actor, err := actorFor(ctx)
	if err != nil {
		return nil, err
	}

	comments, err := uc.repo.Comment().ListByReport(ctx, companyID, reportID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list comments", goerr.V(ReportIDKey, reportID))
	}

	return model.VisibleComments(actor.Role, comments), nil
}

// CountComments returns the number of comments visible to the actor
func (uc *CommentUseCase) CountComments(ctx context.Context, companyID, reportID string) (int, error) {
	comments, err := uc.ListComments(ctx, companyID, reportID)
	if err != nil {
		return 0, err
	}
	return len(comments), nil
}

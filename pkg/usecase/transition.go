package usecase

import (
	"context"

	"github.com/secmon-lab/aletheia/pkg/domain/interfaces"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
	"github.com/secmon-lab/aletheia/pkg/domain/types"
	"github.com/secmon-lab/aletheia/pkg/service/storage"
	"github.com/secmon-lab/aletheia/pkg/utils/errutil"
)

type TransitionUseCase struct {
	repo       interfaces.Repository
	storageSvc storage.Service
}

func NewTransitionUseCase(repo interfaces.Repository, storageSvc storage.Service) *TransitionUseCase {
	return &TransitionUseCase{
		repo:       repo,
		storageSvc: storageSvc,
	}
}

// ChangeStatus applies a manual status change. The transition is
// validated against the actor's role and the freshest stored state,
// then applied as a single conditional write. A lost race surfaces as
// model.ErrConcurrencyConflict; the caller reloads and retries.
func (uc *TransitionUseCase) ChangeStatus(ctx context.Context, companyID, id string, target types.ReportStatus, comment string) (*model.Report, error) {
	actor, err := actorFor(ctx)
	if err != nil {
		return nil, err
	}

	report, err := uc.repo.Report().Get(ctx, companyID, id)
	if err != nil {
		return nil, wrapGetErr(err, id)
	}

	if err := model.ValidateTransition(model.Transition{
		From:    report.Status,
		To:      target,
		Role:    actor.Role,
		Pathway: model.PathwayManual,
	}); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Report().ApplyTransition(ctx, companyID, id, report.Revision, &model.StatusHistory{
		PrevStatus: report.Status,
		NewStatus:  target,
		ActorID:    actor.ID,
		Comment:    comment,
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DecisionResult is the outcome of a corporate approval decision
type DecisionResult struct {
	Report      *model.Report
	Attachments *UploadResult
}

// Decide applies the corporate approval decision: approve or reject,
// only from corporate_approval, with a mandatory justification and
// optional attachments persisted as part of the same transition.
func (uc *TransitionUseCase) Decide(ctx context.Context, companyID, id string, approve bool, justification string, files []UploadFile) (*DecisionResult, error) {
	actor, err := actorFor(ctx)
	if err != nil {
		return nil, err
	}

	if err := model.ValidateDecisionComment(justification); err != nil {
		return nil, err
	}

	report, err := uc.repo.Report().Get(ctx, companyID, id)
	if err != nil {
		return nil, wrapGetErr(err, id)
	}

	target := types.StatusRejected
	if approve {
		target = types.StatusApproved
	}

	if err := model.ValidateTransition(model.Transition{
		From:    report.Status,
		To:      target,
		Role:    actor.Role,
		Pathway: model.PathwayDecision,
	}); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Report().ApplyTransition(ctx, companyID, id, report.Revision, &model.StatusHistory{
		PrevStatus: report.Status,
		NewStatus:  target,
		ActorID:    actor.ID,
		Comment:    justification,
	})
	if err != nil {
		return nil, err
	}

	// The justification also shows up in the case thread. Its durable
	// copy is the history entry written above, so a failed mirror write
	// does not undo the committed decision.
	if _, cerr := uc.repo.Comment().Create(ctx, companyID, &model.Comment{
		ReportID: id,
		AuthorID: actor.ID,
		Body:     justification,
	}); cerr != nil {
		_ = errutil.Handle(ctx, cerr, "failed to mirror decision justification into the case thread")
	}

	result := &DecisionResult{
		Report:      updated,
		Attachments: &UploadResult{},
	}
	if len(files) > 0 {
		stored, serr := storeFiles(ctx, uc.repo, uc.storageSvc, companyID, id, actor.ID, files)
		if serr != nil {
			// The decision is committed at this point. A storage fault
			// is reported per file instead of discarding the result.
			_ = errutil.Handle(ctx, serr, "failed to store decision attachments")
			for _, f := range files {
				result.Attachments.Failed = append(result.Attachments.Failed, UploadFailure{Name: f.Name, Err: serr})
			}
		} else {
			result.Attachments = stored
		}
	}

	return result, nil
}

package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/interfaces"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
	"github.com/secmon-lab/aletheia/pkg/domain/model/auth"
	"github.com/secmon-lab/aletheia/pkg/domain/types"
	"github.com/secmon-lab/aletheia/pkg/service/notify"
	"github.com/secmon-lab/aletheia/pkg/utils/async"
	"github.com/secmon-lab/aletheia/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

type ReportUseCase struct {
	repo      interfaces.Repository
	registry  *model.CompanyRegistry
	notifySvc notify.Service
}

func NewReportUseCase(repo interfaces.Repository, registry *model.CompanyRegistry, notifySvc notify.Service) *ReportUseCase {
	return &ReportUseCase{
		repo:      repo,
		registry:  registry,
		notifySvc: notifySvc,
	}
}

// ReportWithBadge pairs a report with its SLA evaluation at read time
type ReportWithBadge struct {
	Report *model.Report
	Badge  model.Badge
}

// CreateReport classifies the submission and persists it with status
// received. Classification happens exactly once, here. The notification
// is dispatched asynchronously: its failure never rolls back creation.
func (uc *ReportUseCase) CreateReport(ctx context.Context, companyID string, input model.ClassificationInput, submitterID string) (*model.Report, error) {
	if _, err := uc.registry.Get(companyID); err != nil {
		return nil, goerr.Wrap(model.ErrValidation, "unknown company", goerr.V(CompanyIDKey, companyID))
	}

	classification, err := model.Classify(input)
	if err != nil {
		return nil, err
	}

	report := &model.Report{
		SituationType:         input.SituationType,
		ImmediateRisk:         input.ImmediateRisk,
		LeadershipInvolvement: input.LeadershipInvolvement,
		AffectedScope:         input.AffectedScope,
		Recurrence:            input.Recurrence,
		Retaliation:           input.Retaliation,
		Score:                 classification.Score,
		Level:                 classification.Level,
		Justification:         classification.Justification,
		Status:                types.StatusReceived,
		SubmitterID:           submitterID,
	}

	created, err := uc.repo.Report().Create(ctx, companyID, report)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create report")
	}

	if uc.notifySvc != nil {
		notified := *created
		async.Dispatch(ctx, func(ctx context.Context) error {
			return uc.notifySvc.ReportCreated(ctx, &notified)
		})
	}

	return created, nil
}

// GetReport returns a report with its SLA badge computed against now
func (uc *ReportUseCase) GetReport(ctx context.Context, companyID, id string) (*ReportWithBadge, error) {
	report, err := uc.repo.Report().Get(ctx, companyID, id)
	if err != nil {
		return nil, wrapGetErr(err, id)
	}

	badge, err := uc.badge(ctx, companyID, report)
	if err != nil {
		return nil, err
	}

	return &ReportWithBadge{Report: report, Badge: badge}, nil
}

func (uc *ReportUseCase) badge(ctx context.Context, companyID string, report *model.Report) (model.Badge, error) {
	company, err := uc.registry.Get(companyID)
	if err != nil {
		return model.Badge{}, goerr.Wrap(err, "failed to resolve company", goerr.V(CompanyIDKey, companyID))
	}

	var history []*model.StatusHistory
	if report.Finalized() {
		history, err = uc.repo.Report().History(ctx, companyID, report.ID)
		if err != nil {
			return model.Badge{}, goerr.Wrap(err, "failed to load status history", goerr.V(ReportIDKey, report.ID))
		}
	}

	badge := model.ComputeBadge(report, company.SLADays, history, time.Now().UTC())
	if badge.FallbackUsed {
		logging.From(ctx).Warn("finalized report has no terminal history entry, used last-updated timestamp",
			"report_id", report.ID,
			"status", report.Status,
		)
	}
	return badge, nil
}

// ListReports returns the company's reports with badges, computed
// concurrently since finalized reports each need their history.
func (uc *ReportUseCase) ListReports(ctx context.Context, companyID string) ([]*ReportWithBadge, error) {
	reports, err := uc.repo.Report().List(ctx, companyID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list reports")
	}

	results := make([]*ReportWithBadge, len(reports))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(8)

	for i, report := range reports {
		eg.Go(func() error {
			badge, err := uc.badge(egCtx, companyID, report)
			if err != nil {
				return err
			}
			results[i] = &ReportWithBadge{Report: report, Badge: badge}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// GetTimeline returns the append-only status history of a report
func (uc *ReportUseCase) GetTimeline(ctx context.Context, companyID, id string) ([]*model.StatusHistory, error) {
	if _, err := uc.repo.Report().Get(ctx, companyID, id); err != nil {
		return nil, wrapGetErr(err, id)
	}

	history, err := uc.repo.Report().History(ctx, companyID, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load status history", goerr.V(ReportIDKey, id))
	}

	return history, nil
}

// actorFor resolves the acting identity from the context
func actorFor(ctx context.Context) (*auth.Actor, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(model.ErrForbidden, "no acting identity")
	}
	return actor, nil
}

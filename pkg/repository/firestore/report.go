package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
	"github.com/secmon-lab/aletheia/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type reportRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newReportRepository(client *firestore.Client) *reportRepository {
	return &reportRepository{client: client}
}

func (r *reportRepository) reportsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_reports"
	}
	return "reports"
}

func (r *reportRepository) historyCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_report_history"
	}
	return "report_history"
}

// reportDoc is the Firestore representation of a report
type reportDoc struct {
	ID                    string    `firestore:"id"`
	Protocol              string    `firestore:"protocol"`
	SituationType         string    `firestore:"situation_type"`
	ImmediateRisk         bool      `firestore:"immediate_risk"`
	LeadershipInvolvement bool      `firestore:"leadership_involvement"`
	AffectedScope         string    `firestore:"affected_scope"`
	Recurrence            string    `firestore:"recurrence"`
	Retaliation           bool      `firestore:"retaliation"`
	Score                 int       `firestore:"score"`
	Level                 string    `firestore:"level"`
	Justification         string    `firestore:"justification"`
	Status                string    `firestore:"status"`
	CompanyID             string    `firestore:"company_id"`
	SubmitterID           string    `firestore:"submitter_id"`
	Revision              int64     `firestore:"revision"`
	CreatedAt             time.Time `firestore:"created_at"`
	UpdatedAt             time.Time `firestore:"updated_at"`
}

type historyDoc struct {
	ID         string    `firestore:"id"`
	ReportID   string    `firestore:"report_id"`
	PrevStatus string    `firestore:"prev_status"`
	NewStatus  string    `firestore:"new_status"`
	ActorID    string    `firestore:"actor_id"`
	Comment    string    `firestore:"comment"`
	CompanyID  string    `firestore:"company_id"`
	CreatedAt  time.Time `firestore:"created_at"`
}

func toReportDoc(m *model.Report) *reportDoc {
	return &reportDoc{
		ID:                    m.ID,
		Protocol:              m.Protocol,
		SituationType:         m.SituationType.String(),
		ImmediateRisk:         m.ImmediateRisk,
		LeadershipInvolvement: m.LeadershipInvolvement,
		AffectedScope:         m.AffectedScope.String(),
		Recurrence:            m.Recurrence.String(),
		Retaliation:           m.Retaliation,
		Score:                 m.Score,
		Level:                 m.Level.String(),
		Justification:         m.Justification,
		Status:                m.Status.String(),
		CompanyID:             m.CompanyID,
		SubmitterID:           m.SubmitterID,
		Revision:              m.Revision,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func (d *reportDoc) toModel() *model.Report {
	return &model.Report{
		ID:                    d.ID,
		Protocol:              d.Protocol,
		SituationType:         types.SituationType(d.SituationType),
		ImmediateRisk:         d.ImmediateRisk,
		LeadershipInvolvement: d.LeadershipInvolvement,
		AffectedScope:         types.AffectedScope(d.AffectedScope),
		Recurrence:            types.Recurrence(d.Recurrence),
		Retaliation:           d.Retaliation,
		Score:                 d.Score,
		Level:                 types.RiskLevel(d.Level),
		Justification:         d.Justification,
		Status:                types.ReportStatus(d.Status),
		CompanyID:             d.CompanyID,
		SubmitterID:           d.SubmitterID,
		Revision:              d.Revision,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

func (d *historyDoc) toModel() *model.StatusHistory {
	return &model.StatusHistory{
		ID:         d.ID,
		ReportID:   d.ReportID,
		PrevStatus: types.ReportStatus(d.PrevStatus),
		NewStatus:  types.ReportStatus(d.NewStatus),
		ActorID:    d.ActorID,
		Comment:    d.Comment,
		CreatedAt:  d.CreatedAt,
	}
}

func (r *reportRepository) Create(ctx context.Context, companyID string, report *model.Report) (*model.Report, error) {
	now := time.Now().UTC()
	created := *report
	created.ID = uuid.NewString()
	if created.Protocol == "" {
		created.Protocol = model.NewProtocol(now)
	}
	created.CompanyID = companyID
	created.Revision = 1
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err := r.client.Collection(r.reportsCollection()).Doc(created.ID).Set(ctx, toReportDoc(&created))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create report", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *reportRepository) Get(ctx context.Context, companyID, id string) (*model.Report, error) {
	docSnap, err := r.client.Collection(r.reportsCollection()).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrNotFound, "report not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get report", goerr.V("id", id))
	}

	var doc reportDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode report", goerr.V("id", id))
	}
	if doc.CompanyID != companyID {
		return nil, goerr.Wrap(model.ErrNotFound, "report not found", goerr.V("id", id))
	}

	return doc.toModel(), nil
}

func (r *reportRepository) List(ctx context.Context, companyID string) ([]*model.Report, error) {
	iter := r.client.Collection(r.reportsCollection()).
		Where("company_id", "==", companyID).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var reports []*model.Report
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate reports")
		}

		var doc reportDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode report")
		}
		reports = append(reports, doc.toModel())
	}

	return reports, nil
}

func (r *reportRepository) ApplyTransition(ctx context.Context, companyID, id string, expectedRevision int64, entry *model.StatusHistory) (*model.Report, error) {
	reportRef := r.client.Collection(r.reportsCollection()).Doc(id)

	var updated *model.Report
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(reportRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrNotFound, "report not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get report", goerr.V("id", id))
		}

		var doc reportDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return goerr.Wrap(err, "failed to decode report", goerr.V("id", id))
		}
		if doc.CompanyID != companyID {
			return goerr.Wrap(model.ErrNotFound, "report not found", goerr.V("id", id))
		}

		if doc.Revision != expectedRevision {
			return goerr.Wrap(model.ErrConcurrencyConflict, "report was modified by another transition",
				goerr.V("id", id),
				goerr.V("expected_revision", expectedRevision),
				goerr.V("actual_revision", doc.Revision))
		}

		now := time.Now().UTC()
		doc.Status = entry.NewStatus.String()
		doc.Revision++
		doc.UpdatedAt = now

		history := &historyDoc{
			ID:         uuid.NewString(),
			ReportID:   id,
			PrevStatus: entry.PrevStatus.String(),
			NewStatus:  entry.NewStatus.String(),
			ActorID:    entry.ActorID,
			Comment:    entry.Comment,
			CompanyID:  companyID,
			CreatedAt:  now,
		}
		historyRef := r.client.Collection(r.historyCollection()).Doc(history.ID)

		if err := tx.Set(reportRef, &doc); err != nil {
			return goerr.Wrap(err, "failed to update report", goerr.V("id", id))
		}
		if err := tx.Set(historyRef, history); err != nil {
			return goerr.Wrap(err, "failed to append status history", goerr.V("id", id))
		}

		updated = doc.toModel()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *reportRepository) History(ctx context.Context, companyID, id string) ([]*model.StatusHistory, error) {
	iter := r.client.Collection(r.historyCollection()).
		Where("report_id", "==", id).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var history []*model.StatusHistory
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate status history", goerr.V("id", id))
		}

		var doc historyDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode status history", goerr.V("id", id))
		}
		if doc.CompanyID != companyID {
			continue
		}
		history = append(history, doc.toModel())
	}

	return history, nil
}

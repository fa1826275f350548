package interfaces

import (
	"context"

	"github.com/secmon-lab/aletheia/pkg/domain/model"
)

// ReportRepository defines the interface for Report data access. The
// status history is owned by the report aggregate: history rows are
// only ever written together with a status change.
type ReportRepository interface {
	// Create persists a new report together with its classification.
	// ID, protocol and timestamps are filled by the repository.
	Create(ctx context.Context, companyID string, r *model.Report) (*model.Report, error)

	// Get retrieves a report by ID. A missing report fails with
	// model.ErrNotFound; any other error is a backend fault.
	Get(ctx context.Context, companyID, id string) (*model.Report, error)

	// List retrieves all reports of a company
	List(ctx context.Context, companyID string) ([]*model.Report, error)

	// ApplyTransition atomically writes entry.NewStatus as the report
	// status, bumps the revision, and appends the history entry. It
	// must fail with model.ErrConcurrencyConflict when the stored
	// revision does not equal expectedRevision, so that two racing
	// transitions can never both succeed from the same prior state.
	ApplyTransition(ctx context.Context, companyID, id string, expectedRevision int64, entry *model.StatusHistory) (*model.Report, error)

	// History returns the append-only status history of a report,
	// ordered oldest first.
	History(ctx context.Context, companyID, id string) ([]*model.StatusHistory, error)
}

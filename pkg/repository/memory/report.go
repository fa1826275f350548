package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
)

type reportRepository struct {
	mu      sync.RWMutex
	reports map[string]map[string]*model.Report
	history map[string]map[string][]*model.StatusHistory
}

func newReportRepository() *reportRepository {
	return &reportRepository{
		reports: make(map[string]map[string]*model.Report),
		history: make(map[string]map[string][]*model.StatusHistory),
	}
}

func (r *reportRepository) ensureCompany(companyID string) {
	if _, exists := r.reports[companyID]; !exists {
		r.reports[companyID] = make(map[string]*model.Report)
	}
	if _, exists := r.history[companyID]; !exists {
		r.history[companyID] = make(map[string][]*model.StatusHistory)
	}
}

// copyReport creates a deep copy of a report
func copyReport(src *model.Report) *model.Report {
	copied := *src
	return &copied
}

func copyHistory(src *model.StatusHistory) *model.StatusHistory {
	copied := *src
	return &copied
}

func (r *reportRepository) Create(ctx context.Context, companyID string, report *model.Report) (*model.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureCompany(companyID)

	now := time.Now().UTC()
	created := copyReport(report)
	created.ID = uuid.NewString()
	if created.Protocol == "" {
		created.Protocol = model.NewProtocol(now)
	}
	created.CompanyID = companyID
	created.Revision = 1
	created.CreatedAt = now
	created.UpdatedAt = now

	r.reports[companyID][created.ID] = created
	return copyReport(created), nil
}

func (r *reportRepository) Get(ctx context.Context, companyID, id string) (*model.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	company, exists := r.reports[companyID]
	if !exists {
		return nil, goerr.Wrap(model.ErrNotFound, "report not found", goerr.V("id", id))
	}

	report, exists := company[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrNotFound, "report not found", goerr.V("id", id))
	}

	return copyReport(report), nil
}

func (r *reportRepository) List(ctx context.Context, companyID string) ([]*model.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	company, exists := r.reports[companyID]
	if !exists {
		return []*model.Report{}, nil
	}

	reports := make([]*model.Report, 0, len(company))
	for _, report := range company {
		reports = append(reports, copyReport(report))
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.Before(reports[j].CreatedAt)
	})

	return reports, nil
}

func (r *reportRepository) ApplyTransition(ctx context.Context, companyID, id string, expectedRevision int64, entry *model.StatusHistory) (*model.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	company, exists := r.reports[companyID]
	if !exists {
		return nil, goerr.Wrap(model.ErrNotFound, "report not found", goerr.V("id", id))
	}

	report, exists := company[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrNotFound, "report not found", goerr.V("id", id))
	}

	if report.Revision != expectedRevision {
		return nil, goerr.Wrap(model.ErrConcurrencyConflict, "report was modified by another transition",
			goerr.V("id", id),
			goerr.V("expected_revision", expectedRevision),
			goerr.V("actual_revision", report.Revision))
	}

	now := time.Now().UTC()
	appended := copyHistory(entry)
	appended.ID = uuid.NewString()
	appended.ReportID = id
	appended.CreatedAt = now

	report.Status = appended.NewStatus
	report.Revision++
	report.UpdatedAt = now

	r.history[companyID][id] = append(r.history[companyID][id], appended)
	return copyReport(report), nil
}

func (r *reportRepository) History(ctx context.Context, companyID, id string) ([]*model.StatusHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	company, exists := r.history[companyID]
	if !exists {
		return []*model.StatusHistory{}, nil
	}

	entries := company[id]
	history := make([]*model.StatusHistory, 0, len(entries))
	for _, entry := range entries {
		history = append(history, copyHistory(entry))
	}

	return history, nil
}

package usecase

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
)

// Sentinel errors for use case layer
var (
	ErrReportNotFound = errors.New("report not found")
)

// Context keys for error values
const (
	ReportIDKey  = "report_id"
	CompanyIDKey = "company_id"
)

// wrapGetErr translates a repository Get failure. A missing report maps
// to ErrReportNotFound; anything else is a backend fault and passes
// through unchanged so it is not mistaken for a missing record.
func wrapGetErr(err error, id string) error {
	if errors.Is(err, model.ErrNotFound) {
		return goerr.Wrap(ErrReportNotFound, "report not found", goerr.V(ReportIDKey, id))
	}
	return goerr.Wrap(err, "failed to get report", goerr.V(ReportIDKey, id))
}

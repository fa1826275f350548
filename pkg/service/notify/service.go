package notify

import (
	"context"

	"github.com/secmon-lab/aletheia/pkg/domain/model"
)

// Service delivers case notifications. Delivery is fire-and-forget
// from the engine's perspective: a failed notification never rolls
// back case creation.
type Service interface {
	ReportCreated(ctx context.Context, report *model.Report) error
}

package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/aletheia/pkg/domain/types"
)

// Report represents a whistleblowing case moving through the review
// workflow. Classification inputs are immutable after creation and the
// derived score/level/justification are computed exactly once.
type Report struct {
	ID       string
	Protocol string

	SituationType         types.SituationType
	ImmediateRisk         bool
	LeadershipInvolvement bool
	AffectedScope         types.AffectedScope
	Recurrence            types.Recurrence
	Retaliation           bool

	Score         int
	Level         types.RiskLevel
	Justification string

	Status      types.ReportStatus
	CompanyID   string
	SubmitterID string // empty when anonymous

	// Revision guards the status against lost updates. Every applied
	// transition increments it by one.
	Revision int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Anonymous reports whether the report was submitted without identity
func (r *Report) Anonymous() bool {
	return r.SubmitterID == ""
}

// Finalized reports whether the report reached a terminal status
func (r *Report) Finalized() bool {
	return r.Status.IsTerminal()
}

// NewProtocol generates a human-readable protocol code. The code is
// assigned once at creation and never changes.
func NewProtocol(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("WB-%04d-%s", now.Year(), suffix)
}

// StatusHistory is one row of the append-only audit trail. The current
// status of a report must always equal the NewStatus of its most recent
// entry, or the initial status if none exists.
type StatusHistory struct {
	ID         string
	ReportID   string
	PrevStatus types.ReportStatus
	NewStatus  types.ReportStatus
	ActorID    string
	Comment    string
	CreatedAt  time.Time
}

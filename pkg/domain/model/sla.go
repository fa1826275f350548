package model

import (
	"fmt"
	"time"

	"github.com/secmon-lab/aletheia/pkg/domain/types"
)

// Badge is the SLA evaluation of a report at a point in time.
type Badge struct {
	State  types.BadgeState
	Label  string
	Detail string

	// FallbackUsed is set when a finalized report has no terminal
	// history entry and the report's UpdatedAt had to stand in for the
	// finalization instant. Normal operation never produces this; the
	// caller should log it when set.
	FallbackUsed bool
}

// ceilDays converts a duration to whole calendar days, rounding up.
// Negative durations floor at zero.
func ceilDays(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// finalizedAt returns the timestamp of the most recent history entry
// whose NewStatus is terminal, or zero time when none exists.
func finalizedAt(history []*StatusHistory) time.Time {
	var latest time.Time
	for _, h := range history {
		if h.NewStatus.IsTerminal() && h.CreatedAt.After(latest) {
			latest = h.CreatedAt
		}
	}
	return latest
}

// ComputeBadge evaluates the SLA state of a report. Open reports are
// measured against now; finalized reports are a historical fact
// measured against their finalization instant, independent of now.
// A zero or negative slaDays means no deadline is configured and the
// badge is undefined in both modes.
func ComputeBadge(r *Report, slaDays int, history []*StatusHistory, now time.Time) Badge {
	if slaDays <= 0 {
		return Badge{
			State: types.BadgeUndefined,
			Label: "No SLA",
		}
	}

	if r.Status.IsTerminal() {
		return finalizedBadge(r, slaDays, history)
	}

	deadline := r.CreatedAt.AddDate(0, 0, slaDays)
	elapsed := ceilDays(now.Sub(r.CreatedAt))

	if now.After(deadline) {
		over := ceilDays(now.Sub(deadline))
		return Badge{
			State: types.BadgeOverdue,
			Label: "Overdue",
			Detail: fmt.Sprintf("%d days elapsed, %d days over a %d-day window (deadline %s)",
				elapsed, over, slaDays, deadline.Format("2006-01-02")),
		}
	}

	remaining := ceilDays(deadline.Sub(now))
	return Badge{
		State: types.BadgeWithin,
		Label: "Within deadline",
		Detail: fmt.Sprintf("%d of %d days elapsed, %d days remaining (deadline %s)",
			elapsed, slaDays, remaining, deadline.Format("2006-01-02")),
	}
}

func finalizedBadge(r *Report, slaDays int, history []*StatusHistory) Badge {
	finalized := finalizedAt(history)
	fallback := finalized.IsZero()
	if fallback {
		finalized = r.UpdatedAt
	}

	elapsed := ceilDays(finalized.Sub(r.CreatedAt))
	if elapsed <= slaDays {
		return Badge{
			State:        types.BadgeWithin,
			Label:        "Resolved within SLA",
			Detail:       fmt.Sprintf("resolved in %d days within a %d-day window", elapsed, slaDays),
			FallbackUsed: fallback,
		}
	}

	return Badge{
		State:        types.BadgeOverdue,
		Label:        "Resolved over SLA",
		Detail:       fmt.Sprintf("resolved in %d days, %d days over a %d-day window", elapsed, elapsed-slaDays, slaDays),
		FallbackUsed: fallback,
	}
}

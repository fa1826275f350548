package types

// BadgeState represents the SLA evaluation result for a report
type BadgeState string

const (
	// BadgeUndefined means no SLA window is configured for the company,
	// so there is no deadline to evaluate. Never conflated with overdue.
	BadgeUndefined BadgeState = "undefined"
	BadgeWithin    BadgeState = "within_deadline"
	BadgeOverdue   BadgeState = "overdue"
)

// IsValid checks if the badge state is valid
func (b BadgeState) IsValid() bool {
	switch b {
	case BadgeUndefined, BadgeWithin, BadgeOverdue:
		return true
	default:
		return false
	}
}

// String returns the string representation of the badge state
func (b BadgeState) String() string {
	return string(b)
}

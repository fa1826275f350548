package types

import "fmt"

// ReportStatus represents the lifecycle status of a report
type ReportStatus string

const (
	StatusReceived           ReportStatus = "received"
	StatusUnderAnalysis      ReportStatus = "under_analysis"
	StatusUnderInvestigation ReportStatus = "under_investigation"
	StatusWaitingInfo        ReportStatus = "waiting_info"
	StatusCorporateApproval  ReportStatus = "corporate_approval"
	StatusApproved           ReportStatus = "approved"
	StatusRejected           ReportStatus = "rejected"
)

// AllReportStatuses returns all valid report statuses
func AllReportStatuses() []ReportStatus {
	return []ReportStatus{
		StatusReceived,
		StatusUnderAnalysis,
		StatusUnderInvestigation,
		StatusWaitingInfo,
		StatusCorporateApproval,
		StatusApproved,
		StatusRejected,
	}
}

// IsValid checks if the report status is valid
func (s ReportStatus) IsValid() bool {
	switch s {
	case StatusReceived,
		StatusUnderAnalysis,
		StatusUnderInvestigation,
		StatusWaitingInfo,
		StatusCorporateApproval,
		StatusApproved,
		StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status ends the normal workflow.
// A report in a terminal status is finalized and locked for every
// role except admin.
func (s ReportStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// String returns the string representation of the report status
func (s ReportStatus) String() string {
	return string(s)
}

// ParseReportStatus parses a string into a ReportStatus
func ParseReportStatus(s string) (ReportStatus, error) {
	status := ReportStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid report status: %s", s)
	}
	return status, nil
}

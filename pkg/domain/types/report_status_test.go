package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aletheia/pkg/domain/types"
)

func TestReportStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status types.ReportStatus
		want   bool
	}{
		{
			name:   "valid received",
			status: types.StatusReceived,
			want:   true,
		},
		{
			name:   "valid corporate approval",
			status: types.StatusCorporateApproval,
			want:   true,
		},
		{
			name:   "valid approved",
			status: types.StatusApproved,
			want:   true,
		},
		{
			name:   "invalid status",
			status: types.ReportStatus("archived"),
			want:   false,
		},
		{
			name:   "empty status",
			status: types.ReportStatus(""),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.want {
				gt.B(t, tt.status.IsValid()).True()
			} else {
				gt.B(t, tt.status.IsValid()).False()
			}
		})
	}
}

func TestReportStatus_IsTerminal(t *testing.T) {
	gt.B(t, types.StatusApproved.IsTerminal()).True()
	gt.B(t, types.StatusRejected.IsTerminal()).True()

	for _, s := range []types.ReportStatus{
		types.StatusReceived,
		types.StatusUnderAnalysis,
		types.StatusUnderInvestigation,
		types.StatusWaitingInfo,
		types.StatusCorporateApproval,
	} {
		gt.B(t, s.IsTerminal()).
			Describef("status %s must not be terminal", s).
			False()
	}
}

func TestAllReportStatuses(t *testing.T) {
	statuses := types.AllReportStatuses()
	gt.A(t, statuses).Length(7)

	for _, status := range statuses {
		gt.B(t, status.IsValid()).
			Describef("Status %s should be valid", status).
			True()
	}
}

func TestParseReportStatus(t *testing.T) {
	got, err := types.ParseReportStatus("under_analysis")
	gt.NoError(t, err)
	gt.V(t, got).Equal(types.StatusUnderAnalysis)

	_, err = types.ParseReportStatus("unknown")
	gt.Error(t, err)
}

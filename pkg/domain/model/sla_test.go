package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
	"github.com/secmon-lab/aletheia/pkg/domain/types"
)

var day0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return day0.AddDate(0, 0, n)
}

func TestComputeBadge_InFlight(t *testing.T) {
	report := &model.Report{
		Status:    types.StatusUnderAnalysis,
		CreatedAt: day0,
	}

	t.Run("overdue after deadline", func(t *testing.T) {
		badge := model.ComputeBadge(report, 5, nil, day(7))
		gt.V(t, badge.State).Equal(types.BadgeOverdue)
		gt.S(t, badge.Detail).Contains("7 days elapsed")
		gt.S(t, badge.Detail).Contains("2 days over")
	})

	t.Run("within deadline before it passes", func(t *testing.T) {
		badge := model.ComputeBadge(report, 5, nil, day(3))
		gt.V(t, badge.State).Equal(types.BadgeWithin)
		gt.S(t, badge.Detail).Contains("2 days remaining")
	})

	t.Run("exactly at deadline is still within", func(t *testing.T) {
		badge := model.ComputeBadge(report, 5, nil, day(5))
		gt.V(t, badge.State).Equal(types.BadgeWithin)
	})
}

func TestComputeBadge_Finalized(t *testing.T) {
	report := &model.Report{
		Status:    types.StatusApproved,
		CreatedAt: day0,
		UpdatedAt: day(20),
	}

	t.Run("compliant regardless of now", func(t *testing.T) {
		history := []*model.StatusHistory{
			{NewStatus: types.StatusUnderAnalysis, CreatedAt: day(1)},
			{NewStatus: types.StatusApproved, CreatedAt: day(4)},
		}

		// Even long after the deadline has passed, a report finalized
		// inside the window stays compliant.
		badge := model.ComputeBadge(report, 5, history, day(100))
		gt.V(t, badge.State).Equal(types.BadgeWithin)
		gt.S(t, badge.Detail).Contains("resolved in 4 days")
		gt.B(t, badge.FallbackUsed).False()
	})

	t.Run("over SLA reports days exceeded", func(t *testing.T) {
		history := []*model.StatusHistory{
			{NewStatus: types.StatusRejected, CreatedAt: day(9)},
		}

		badge := model.ComputeBadge(report, 5, history, day(9))
		gt.V(t, badge.State).Equal(types.BadgeOverdue)
		gt.S(t, badge.Detail).Contains("resolved in 9 days")
		gt.S(t, badge.Detail).Contains("4 days over")
	})

	t.Run("uses most recent terminal entry", func(t *testing.T) {
		history := []*model.StatusHistory{
			{NewStatus: types.StatusRejected, CreatedAt: day(2)},
			{NewStatus: types.StatusUnderAnalysis, CreatedAt: day(3)},
			{NewStatus: types.StatusApproved, CreatedAt: day(8)},
		}

		badge := model.ComputeBadge(report, 5, history, day(8))
		gt.V(t, badge.State).Equal(types.BadgeOverdue)
		gt.S(t, badge.Detail).Contains("resolved in 8 days")
	})

	t.Run("falls back to UpdatedAt without terminal history", func(t *testing.T) {
		badge := model.ComputeBadge(report, 5, nil, day(21))
		gt.B(t, badge.FallbackUsed).True()
		gt.V(t, badge.State).Equal(types.BadgeOverdue)
	})
}

func TestComputeBadge_Undefined(t *testing.T) {
	open := &model.Report{Status: types.StatusReceived, CreatedAt: day0}
	closed := &model.Report{Status: types.StatusApproved, CreatedAt: day0, UpdatedAt: day(3)}

	// No SLA window configured: undefined in both modes, never overdue.
	for _, slaDays := range []int{0, -1} {
		gt.V(t, model.ComputeBadge(open, slaDays, nil, day(365)).State).Equal(types.BadgeUndefined)
		gt.V(t, model.ComputeBadge(closed, slaDays, nil, day(365)).State).Equal(types.BadgeUndefined)
	}
}

func TestComputeBadge_Idempotent(t *testing.T) {
	report := &model.Report{Status: types.StatusWaitingInfo, CreatedAt: day0}
	first := model.ComputeBadge(report, 10, nil, day(4))
	second := model.ComputeBadge(report, 10, nil, day(4))
	gt.V(t, first).Equal(second)
}

package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aletheia/pkg/domain/types"
)

func TestSituationType(t *testing.T) {
	gt.A(t, types.AllSituationTypes()).Length(8)

	for _, st := range types.AllSituationTypes() {
		gt.B(t, st.IsValid()).
			Describef("situation %s should be valid", st).
			True()
	}

	gt.B(t, types.SituationType("bullying").IsValid()).False()

	got, err := types.ParseSituationType("sexual_harassment")
	gt.NoError(t, err)
	gt.V(t, got).Equal(types.SituationSexualHarassment)

	_, err = types.ParseSituationType("")
	gt.Error(t, err)
}

func TestRiskLevel_Rank(t *testing.T) {
	levels := types.AllRiskLevels()
	gt.A(t, levels).Length(4)

	for i := 1; i < len(levels); i++ {
		gt.B(t, levels[i].Rank() > levels[i-1].Rank()).
			Describef("%s must rank above %s", levels[i], levels[i-1]).
			True()
	}

	gt.B(t, types.RiskHigh.AtLeast(types.RiskModerate)).True()
	gt.B(t, types.RiskHigh.AtLeast(types.RiskHigh)).True()
	gt.B(t, types.RiskModerate.AtLeast(types.RiskCritical)).False()
	gt.N(t, types.RiskLevel("unknown").Rank()).Equal(-1)
}

func TestRole(t *testing.T) {
	gt.B(t, types.RoleAdmin.IsManager()).True()
	gt.B(t, types.RoleCorporateManager.IsManager()).True()
	gt.B(t, types.RoleApproverManager.IsManager()).True()
	gt.B(t, types.RoleEmployee.IsManager()).False()

	_, err := types.ParseRole("superuser")
	gt.Error(t, err)

	got, err := types.ParseRole("corporate_manager")
	gt.NoError(t, err)
	gt.V(t, got).Equal(types.RoleCorporateManager)
}

func TestScopeAndRecurrence(t *testing.T) {
	gt.A(t, types.AllAffectedScopes()).Length(4)
	gt.A(t, types.AllRecurrences()).Length(3)

	gt.B(t, types.ScopeCompany.IsValid()).True()
	gt.B(t, types.AffectedScope("global").IsValid()).False()
	gt.B(t, types.RecurrenceFrequent.IsValid()).True()
	gt.B(t, types.Recurrence("daily").IsValid()).False()
}

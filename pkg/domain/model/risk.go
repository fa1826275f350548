package model

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/types"
)

// ClassificationInput holds the six immutable fields a report is scored
// from. All fields are required; there are no defaults.
type ClassificationInput struct {
	SituationType         types.SituationType
	ImmediateRisk         bool
	LeadershipInvolvement bool
	AffectedScope         types.AffectedScope
	Recurrence            types.Recurrence
	Retaliation           bool
}

// Classification is the derived risk assessment of a report. Computed
// once at creation and never recomputed.
type Classification struct {
	Score         int
	Level         types.RiskLevel
	Justification string
}

const (
	immediateRiskWeight = 40
	leadershipWeight    = 20
	retaliationWeight   = 30
)

var situationWeights = map[types.SituationType]int{
	types.SituationConflict:         10,
	types.SituationMisconduct:       20,
	types.SituationMoralHarassment:  35,
	types.SituationDiscrimination:   45,
	types.SituationSexualHarassment: 60,
	types.SituationThreatViolence:   70,
	types.SituationFraud:            60,
	types.SituationOther:            20,
}

var scopeWeights = map[types.AffectedScope]int{
	types.ScopeIndividual: 0,
	types.ScopeTeam:       10,
	types.ScopeDepartment: 20,
	types.ScopeCompany:    30,
}

var recurrenceWeights = map[types.Recurrence]int{
	types.RecurrenceFirstTime:      0,
	types.RecurrenceOccurredBefore: 10,
	types.RecurrenceFrequent:       20,
}

// Validate checks that every classification field holds a known value
func (in ClassificationInput) Validate() error {
	if !in.SituationType.IsValid() {
		return goerr.Wrap(ErrValidation, "unknown situation type",
			goerr.V("field", "situation_type"),
			goerr.V("value", in.SituationType))
	}
	if !in.AffectedScope.IsValid() {
		return goerr.Wrap(ErrValidation, "unknown affected scope",
			goerr.V("field", "affected_scope"),
			goerr.V("value", in.AffectedScope))
	}
	if !in.Recurrence.IsValid() {
		return goerr.Wrap(ErrValidation, "unknown recurrence",
			goerr.V("field", "recurrence"),
			goerr.V("value", in.Recurrence))
	}
	return nil
}

// levelByThreshold maps a raw score to a risk level
func levelByThreshold(score int) types.RiskLevel {
	switch {
	case score >= 110:
		return types.RiskCritical
	case score >= 70:
		return types.RiskHigh
	case score >= 30:
		return types.RiskModerate
	default:
		return types.RiskLow
	}
}

// Classify computes the risk score, level and justification trail for
// the given inputs. The result is deterministic: identical inputs
// always yield byte-identical justification text. An unknown situation
// type is a contract violation, not a recoverable condition.
func Classify(in ClassificationInput) (*Classification, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var trail []string
	score := situationWeights[in.SituationType]
	trail = append(trail, fmt.Sprintf("situation %s: +%d", in.SituationType, situationWeights[in.SituationType]))

	if in.ImmediateRisk {
		score += immediateRiskWeight
		trail = append(trail, fmt.Sprintf("immediate risk: +%d", immediateRiskWeight))
	}
	if in.LeadershipInvolvement {
		score += leadershipWeight
		trail = append(trail, fmt.Sprintf("leadership involvement: +%d", leadershipWeight))
	}

	score += scopeWeights[in.AffectedScope]
	trail = append(trail, fmt.Sprintf("affected scope %s: +%d", in.AffectedScope, scopeWeights[in.AffectedScope]))

	score += recurrenceWeights[in.Recurrence]
	trail = append(trail, fmt.Sprintf("recurrence %s: +%d", in.Recurrence, recurrenceWeights[in.Recurrence]))

	if in.Retaliation {
		score += retaliationWeight
		trail = append(trail, fmt.Sprintf("retaliation: +%d", retaliationWeight))
	}

	level := levelByThreshold(score)
	trail = append(trail, fmt.Sprintf("total score: %d", score))
	trail = append(trail, fmt.Sprintf("level by threshold: %s", level))

	// Overrides only ever raise the level, applied in a fixed order.
	if (in.SituationType == types.SituationSexualHarassment || in.SituationType == types.SituationThreatViolence) &&
		!level.AtLeast(types.RiskHigh) {
		level = types.RiskHigh
		trail = append(trail, fmt.Sprintf("override: %s raises level to %s", in.SituationType, level))
	}
	if in.ImmediateRisk && in.SituationType == types.SituationThreatViolence {
		// Supersedes the harassment/violence override above.
		level = types.RiskCritical
		trail = append(trail, fmt.Sprintf("override: immediate risk with %s forces %s", in.SituationType, level))
	} else if in.ImmediateRisk && !level.AtLeast(types.RiskHigh) {
		level = types.RiskHigh
		trail = append(trail, fmt.Sprintf("override: immediate risk raises level to %s", level))
	}

	trail = append(trail, fmt.Sprintf("final level: %s", level))

	return &Classification{
		Score:         score,
		Level:         level,
		Justification: strings.Join(trail, "\n"),
	}, nil
}

package types

import "fmt"

// SituationType represents the category of a reported situation
type SituationType string

const (
	SituationConflict         SituationType = "conflict"
	SituationMisconduct       SituationType = "misconduct"
	SituationMoralHarassment  SituationType = "moral_harassment"
	SituationDiscrimination   SituationType = "discrimination"
	SituationSexualHarassment SituationType = "sexual_harassment"
	SituationThreatViolence   SituationType = "threat_violence"
	SituationFraud            SituationType = "fraud"
	SituationOther            SituationType = "other"
)

// AllSituationTypes returns all valid situation types
func AllSituationTypes() []SituationType {
	return []SituationType{
		SituationConflict,
		SituationMisconduct,
		SituationMoralHarassment,
		SituationDiscrimination,
		SituationSexualHarassment,
		SituationThreatViolence,
		SituationFraud,
		SituationOther,
	}
}

// IsValid checks if the situation type is valid
func (s SituationType) IsValid() bool {
	switch s {
	case SituationConflict,
		SituationMisconduct,
		SituationMoralHarassment,
		SituationDiscrimination,
		SituationSexualHarassment,
		SituationThreatViolence,
		SituationFraud,
		SituationOther:
		return true
	default:
		return false
	}
}

// String returns the string representation of the situation type
func (s SituationType) String() string {
	return string(s)
}

// ParseSituationType parses a string into a SituationType
func ParseSituationType(s string) (SituationType, error) {
	st := SituationType(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid situation type: %s", s)
	}
	return st, nil
}

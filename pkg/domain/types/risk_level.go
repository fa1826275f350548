package types

import "fmt"

// RiskLevel represents the classified severity of a report
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// AllRiskLevels returns all valid risk levels, ordered from lowest to highest
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{
		RiskLow,
		RiskModerate,
		RiskHigh,
		RiskCritical,
	}
}

// IsValid checks if the risk level is valid
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLow, RiskModerate, RiskHigh, RiskCritical:
		return true
	default:
		return false
	}
}

// Rank returns the ordinal position of the level. Higher rank means more severe.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLow:
		return 0
	case RiskModerate:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	default:
		return -1
	}
}

// AtLeast reports whether the level is equal to or more severe than other
func (l RiskLevel) AtLeast(other RiskLevel) bool {
	return l.Rank() >= other.Rank()
}

// String returns the string representation of the risk level
func (l RiskLevel) String() string {
	return string(l)
}

// ParseRiskLevel parses a string into a RiskLevel
func ParseRiskLevel(s string) (RiskLevel, error) {
	l := RiskLevel(s)
	if !l.IsValid() {
		return "", fmt.Errorf("invalid risk level: %s", s)
	}
	return l, nil
}

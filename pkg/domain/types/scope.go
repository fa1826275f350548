package types

import "fmt"

// AffectedScope represents how widely a reported situation reaches
type AffectedScope string

const (
	ScopeIndividual AffectedScope = "individual"
	ScopeTeam       AffectedScope = "team"
	ScopeDepartment AffectedScope = "department"
	ScopeCompany    AffectedScope = "company"
)

// AllAffectedScopes returns all valid affected scopes
func AllAffectedScopes() []AffectedScope {
	return []AffectedScope{
		ScopeIndividual,
		ScopeTeam,
		ScopeDepartment,
		ScopeCompany,
	}
}

// IsValid checks if the affected scope is valid
func (s AffectedScope) IsValid() bool {
	switch s {
	case ScopeIndividual, ScopeTeam, ScopeDepartment, ScopeCompany:
		return true
	default:
		return false
	}
}

// String returns the string representation of the affected scope
func (s AffectedScope) String() string {
	return string(s)
}

// ParseAffectedScope parses a string into an AffectedScope
func ParseAffectedScope(s string) (AffectedScope, error) {
	scope := AffectedScope(s)
	if !scope.IsValid() {
		return "", fmt.Errorf("invalid affected scope: %s", s)
	}
	return scope, nil
}

// Recurrence represents how often the reported situation has happened
type Recurrence string

const (
	RecurrenceFirstTime      Recurrence = "first_time"
	RecurrenceOccurredBefore Recurrence = "occurred_before"
	RecurrenceFrequent       Recurrence = "frequent"
)

// AllRecurrences returns all valid recurrence values
func AllRecurrences() []Recurrence {
	return []Recurrence{
		RecurrenceFirstTime,
		RecurrenceOccurredBefore,
		RecurrenceFrequent,
	}
}

// IsValid checks if the recurrence is valid
func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceFirstTime, RecurrenceOccurredBefore, RecurrenceFrequent:
		return true
	default:
		return false
	}
}

// String returns the string representation of the recurrence
func (r Recurrence) String() string {
	return string(r)
}

// ParseRecurrence parses a string into a Recurrence
func ParseRecurrence(s string) (Recurrence, error) {
	r := Recurrence(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid recurrence: %s", s)
	}
	return r, nil
}

package model

import (
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/types"
)

// TransitionPathway identifies which of the two transition pathways an
// actor is attempting.
type TransitionPathway string

const (
	// PathwayManual is a direct status change by a managing role.
	PathwayManual TransitionPathway = "manual"
	// PathwayDecision is the corporate approval decision, only valid
	// from corporate_approval and only into a terminal status.
	PathwayDecision TransitionPathway = "decision"
)

// Transition is the triple (current status, target status, actor role)
// plus the pathway it travels.
type Transition struct {
	From    types.ReportStatus
	To      types.ReportStatus
	Role    types.Role
	Pathway TransitionPathway
}

// manualAuthority is the explicit transition table for the manual
// pathway: which roles may change status, and whether they may
// transition out of a terminal state.
var manualAuthority = map[types.Role]struct {
	ReopenTerminal bool
}{
	types.RoleAdmin:            {ReopenTerminal: true},
	types.RoleCorporateManager: {ReopenTerminal: false},
	types.RoleApproverManager:  {ReopenTerminal: false},
}

const (
	DecisionCommentMinLen = 1
	DecisionCommentMaxLen = 500
)

// ValidateTransition checks a transition against the table. It returns
// ErrForbidden when the role lacks authority, ErrInvalidTransition when
// the target is unreachable via the attempted pathway, and
// ErrValidation for unknown statuses or roles.
func ValidateTransition(tr Transition) error {
	if !tr.From.IsValid() {
		return goerr.Wrap(ErrValidation, "unknown current status", goerr.V("status", tr.From))
	}
	if !tr.To.IsValid() {
		return goerr.Wrap(ErrValidation, "unknown target status", goerr.V("status", tr.To))
	}
	if !tr.Role.IsValid() {
		return goerr.Wrap(ErrValidation, "unknown role", goerr.V("role", tr.Role))
	}

	switch tr.Pathway {
	case PathwayManual:
		authority, ok := manualAuthority[tr.Role]
		if !ok {
			return goerr.Wrap(ErrForbidden, "role may not change report status",
				goerr.V("role", tr.Role))
		}
		if tr.From.IsTerminal() && !authority.ReopenTerminal {
			return goerr.Wrap(ErrForbidden, "only admin may reopen a finalized report",
				goerr.V("role", tr.Role),
				goerr.V("status", tr.From))
		}
		return nil

	case PathwayDecision:
		if !tr.Role.IsManager() {
			return goerr.Wrap(ErrForbidden, "role lacks case-management authority",
				goerr.V("role", tr.Role))
		}
		if tr.From != types.StatusCorporateApproval {
			return goerr.Wrap(ErrInvalidTransition, "decision is only valid from corporate_approval",
				goerr.V("from", tr.From),
				goerr.V("to", tr.To))
		}
		if !tr.To.IsTerminal() {
			return goerr.Wrap(ErrInvalidTransition, "decision must approve or reject",
				goerr.V("to", tr.To))
		}
		return nil

	default:
		return goerr.Wrap(ErrValidation, "unknown transition pathway", goerr.V("pathway", tr.Pathway))
	}
}

// ValidateDecisionComment checks the mandatory justification comment of
// a corporate approval decision. The length bound counts characters, not
// bytes, so multibyte text is not penalized.
func ValidateDecisionComment(body string) error {
	if strings.TrimSpace(body) == "" {
		return goerr.Wrap(ErrValidation, "decision justification is required",
			goerr.V("field", "comment"))
	}
	if n := utf8.RuneCountInString(body); n > DecisionCommentMaxLen {
		return goerr.Wrap(ErrValidation, "decision justification exceeds maximum length",
			goerr.V("field", "comment"),
			goerr.V("max", DecisionCommentMaxLen),
			goerr.V("length", n))
	}
	return nil
}

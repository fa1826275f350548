package model

import (
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/types"
)

// GeneralCommentMaxLen bounds ordinary case comments. The source system
// left these unbounded; an explicit cap was chosen instead of
// inheriting the gap.
const GeneralCommentMaxLen = 2000

// CanComment reports whether a role may add a comment given the
// finalization state of the report. Once a report is finalized only
// admin may still comment.
func CanComment(role types.Role, finalized bool) bool {
	if finalized {
		return role == types.RoleAdmin
	}
	return role.IsValid()
}

// CanAttach reports whether a role may upload attachments given the
// finalization state of the report.
func CanAttach(role types.Role, finalized bool) bool {
	if finalized {
		return role == types.RoleAdmin
	}
	return role.IsValid()
}

// CanMarkInternal reports whether a role may flag a comment as
// internal. The basic submitter role may not.
func CanMarkInternal(role types.Role) bool {
	return role.IsValid() && role != types.RoleEmployee
}

// VisibleComments filters comments by role. The basic submitter role
// sees only public comments; every other role sees everything. The same
// filter applies wherever comments are listed or counted.
func VisibleComments(role types.Role, comments []*Comment) []*Comment {
	if role != types.RoleEmployee {
		return comments
	}

	visible := make([]*Comment, 0, len(comments))
	for _, c := range comments {
		if !c.Internal {
			visible = append(visible, c)
		}
	}
	return visible
}

// ValidateCommentBody checks an ordinary case comment: at least one
// non-whitespace character, at most GeneralCommentMaxLen characters.
func ValidateCommentBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return goerr.Wrap(ErrValidation, "comment body is required",
			goerr.V("field", "body"))
	}
	if n := utf8.RuneCountInString(body); n > GeneralCommentMaxLen {
		return goerr.Wrap(ErrValidation, "comment body exceeds maximum length",
			goerr.V("field", "body"),
			goerr.V("max", GeneralCommentMaxLen),
			goerr.V("length", n))
	}
	return nil
}

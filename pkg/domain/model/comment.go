package model

import "time"

// Comment represents a case comment. Internal comments are hidden from
// the basic submitter role.
type Comment struct {
	ID        string
	ReportID  string
	AuthorID  string
	Body      string
	Internal  bool
	CreatedAt time.Time
}

// Attachment holds file metadata for a report. The actual bytes live in
// the external file store; only the returned storage path is persisted.
type Attachment struct {
	ID          string
	ReportID    string
	UploaderID  string
	FileName    string
	StoragePath string
	Size        int64
	ContentType string
	CreatedAt   time.Time
}

package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Report() ReportRepository
	Comment() CommentRepository
	Attachment() AttachmentRepository

	Close() error
}

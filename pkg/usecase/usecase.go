package usecase

import (
	"github.com/secmon-lab/aletheia/pkg/domain/interfaces"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
	"github.com/secmon-lab/aletheia/pkg/service/notify"
	"github.com/secmon-lab/aletheia/pkg/service/storage"
)

type UseCases struct {
	repo       interfaces.Repository
	registry   *model.CompanyRegistry
	storageSvc storage.Service
	notifySvc  notify.Service

	Report     *ReportUseCase
	Transition *TransitionUseCase
	Comment    *CommentUseCase
	Attachment *AttachmentUseCase
}

type Option func(*UseCases)

func WithStorage(svc storage.Service) Option {
	return func(uc *UseCases) {
		uc.storageSvc = svc
	}
}

func WithNotify(svc notify.Service) Option {
	return func(uc *UseCases) {
		uc.notifySvc = svc
	}
}

func New(repo interfaces.Repository, registry *model.CompanyRegistry, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:     repo,
		registry: registry,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Report = NewReportUseCase(repo, registry, uc.notifySvc)
	uc.Transition = NewTransitionUseCase(repo, uc.storageSvc)
	uc.Comment = NewCommentUseCase(repo)
	uc.Attachment = NewAttachmentUseCase(repo, uc.storageSvc)

	return uc
}

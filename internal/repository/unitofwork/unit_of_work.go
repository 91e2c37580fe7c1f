package unitofwork

import (
	"context"

	"ai-dashboard-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ChatFolderRepository() contract.ChatFolderRepository

	DocumentRepository() contract.DocumentRepository
	DocumentFolderRepository() contract.DocumentFolderRepository
	DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository

	ChatDocumentLinkRepository() contract.ChatDocumentLinkRepository
	NotificationRepository() contract.NotificationRepository
}

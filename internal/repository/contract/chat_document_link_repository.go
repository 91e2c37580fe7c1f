package contract

import (
	"context"

	"ai-dashboard-be/internal/entity"
	"ai-dashboard-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatDocumentLinkRepository interface {
	// Upsert creates the link for (ChatSessionId, DocumentId) or, when
	// one already exists, updates its IsContextActive flag in place.
	Upsert(ctx context.Context, link *entity.ChatDocumentLink) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByChatSessionId(ctx context.Context, chatSessionId uuid.UUID) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	DeleteByPair(ctx context.Context, chatSessionId, documentId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatDocumentLink, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatDocumentLink, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

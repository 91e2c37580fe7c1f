package contract

import (
	"context"

	"ai-dashboard-be/internal/entity"
	"ai-dashboard-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	Update(ctx context.Context, document *entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ClearFolderReference moves every document of the folder back to
	// the unfiled group.
	ClearFolderReference(ctx context.Context, documentFolderId uuid.UUID) error
	// MoveToFolder reassigns the given documents; a nil folder id
	// unfiles them.
	MoveToFolder(ctx context.Context, documentIds []uuid.UUID, documentFolderId *uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

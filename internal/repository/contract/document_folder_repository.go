package contract

import (
	"context"

	"ai-dashboard-be/internal/entity"
	"ai-dashboard-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentFolderRepository interface {
	Create(ctx context.Context, folder *entity.DocumentFolder) error
	Update(ctx context.Context, folder *entity.DocumentFolder) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentFolder, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentFolder, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

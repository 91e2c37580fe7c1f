package contract

import (
	"context"

	"ai-dashboard-be/internal/entity"
	"ai-dashboard-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatFolderRepository interface {
	Create(ctx context.Context, folder *entity.ChatFolder) error
	Update(ctx context.Context, folder *entity.ChatFolder) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatFolder, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatFolder, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

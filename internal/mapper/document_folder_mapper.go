package mapper

import (
	"time"

	"ai-dashboard-be/internal/entity"
	"ai-dashboard-be/internal/model"

	"gorm.io/gorm"
)

type DocumentFolderMapper struct{}

func NewDocumentFolderMapper() *DocumentFolderMapper {
	return &DocumentFolderMapper{}
}

func (m *DocumentFolderMapper) ToEntity(f *model.DocumentFolder) *entity.DocumentFolder {
	if f == nil {
		return nil
	}

	var deletedAt *time.Time
	if f.DeletedAt.Valid {
		t := f.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !f.UpdatedAt.IsZero() {
		t := f.UpdatedAt
		updatedAt = &t
	}

	return &entity.DocumentFolder{
		Id:        f.Id,
		Name:      f.Name,
		ColorTag:  f.ColorTag,
		UserId:    f.UserId,
		CreatedAt: f.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: f.DeletedAt.Valid,
	}
}

func (m *DocumentFolderMapper) ToModel(f *entity.DocumentFolder) *model.DocumentFolder {
	if f == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if f.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *f.DeletedAt, Valid: true}
	} else if f.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if f.UpdatedAt != nil {
		updatedAt = *f.UpdatedAt
	}

	return &model.DocumentFolder{
		Id:        f.Id,
		Name:      f.Name,
		ColorTag:  f.ColorTag,
		UserId:    f.UserId,
		CreatedAt: f.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *DocumentFolderMapper) ToEntities(folders []*model.DocumentFolder) []*entity.DocumentFolder {
	entities := make([]*entity.DocumentFolder, len(folders))
	for i, f := range folders {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

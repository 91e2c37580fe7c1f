package implementation

import (
	"context"
	"errors"

	"ai-dashboard-be/internal/entity"
	"ai-dashboard-be/internal/mapper"
	"ai-dashboard-be/internal/model"
	"ai-dashboard-be/internal/repository/contract"
	"ai-dashboard-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentFolderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentFolderMapper
}

func NewDocumentFolderRepository(db *gorm.DB) contract.DocumentFolderRepository {
	return &DocumentFolderRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentFolderMapper(),
	}
}

func (r *DocumentFolderRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentFolderRepositoryImpl) Create(ctx context.Context, folder *entity.DocumentFolder) error {
	m := r.mapper.ToModel(folder)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*folder = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentFolderRepositoryImpl) Update(ctx context.Context, folder *entity.DocumentFolder) error {
	m := r.mapper.ToModel(folder)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*folder = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentFolderRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.DocumentFolder{}, id).Error
}

func (r *DocumentFolderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentFolder, error) {
	var m model.DocumentFolder
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentFolderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentFolder, error) {
	var models []*model.DocumentFolder
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentFolderRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.DocumentFolder{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

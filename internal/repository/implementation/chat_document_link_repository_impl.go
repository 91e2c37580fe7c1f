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
	"gorm.io/gorm/clause"
)

type ChatDocumentLinkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatDocumentLinkMapper
}

func NewChatDocumentLinkRepository(db *gorm.DB) contract.ChatDocumentLinkRepository {
	return &ChatDocumentLinkRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatDocumentLinkMapper(),
	}
}

func (r *ChatDocumentLinkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatDocumentLinkRepositoryImpl) Upsert(ctx context.Context, link *entity.ChatDocumentLink) error {
	m := r.mapper.ToModel(link)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chat_session_id"}, {Name: "document_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_context_active"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*link = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatDocumentLinkRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ChatDocumentLink{}, id).Error
}

func (r *ChatDocumentLinkRepositoryImpl) DeleteByChatSessionId(ctx context.Context, chatSessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("chat_session_id = ?", chatSessionId).Delete(&model.ChatDocumentLink{}).Error
}

func (r *ChatDocumentLinkRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.ChatDocumentLink{}).Error
}

func (r *ChatDocumentLinkRepositoryImpl) DeleteByPair(ctx context.Context, chatSessionId, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("chat_session_id = ? AND document_id = ?", chatSessionId, documentId).
		Delete(&model.ChatDocumentLink{}).Error
}

func (r *ChatDocumentLinkRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatDocumentLink, error) {
	var m model.ChatDocumentLink
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChatDocumentLinkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatDocumentLink, error) {
	var models []*model.ChatDocumentLink
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChatDocumentLinkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatDocumentLink{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

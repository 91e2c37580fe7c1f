package mapper

import (
	"ai-dashboard-be/internal/entity"
	"ai-dashboard-be/internal/model"
)

type ChatDocumentLinkMapper struct{}

func NewChatDocumentLinkMapper() *ChatDocumentLinkMapper {
	return &ChatDocumentLinkMapper{}
}

func (m *ChatDocumentLinkMapper) ToEntity(l *model.ChatDocumentLink) *entity.ChatDocumentLink {
	if l == nil {
		return nil
	}

	return &entity.ChatDocumentLink{
		Id:              l.Id,
		ChatSessionId:   l.ChatSessionId,
		DocumentId:      l.DocumentId,
		IsContextActive: l.IsContextActive,
		LinkedAt:        l.LinkedAt,
	}
}

func (m *ChatDocumentLinkMapper) ToModel(l *entity.ChatDocumentLink) *model.ChatDocumentLink {
	if l == nil {
		return nil
	}

	return &model.ChatDocumentLink{
		Id:              l.Id,
		ChatSessionId:   l.ChatSessionId,
		DocumentId:      l.DocumentId,
		IsContextActive: l.IsContextActive,
		LinkedAt:        l.LinkedAt,
	}
}

func (m *ChatDocumentLinkMapper) ToEntities(links []*model.ChatDocumentLink) []*entity.ChatDocumentLink {
	entities := make([]*entity.ChatDocumentLink, len(links))
	for i, l := range links {
		entities[i] = m.ToEntity(l)
	}
	return entities
}

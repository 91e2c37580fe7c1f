package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatDocumentLink struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_document"`
	DocumentId      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_document"`
	IsContextActive bool      `gorm:"default:true"`
	LinkedAt        time.Time `gorm:"not null"`
}

func (ChatDocumentLink) TableName() string {
	return "chat_document_links"
}

package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy filters by owning user
type OwnedBy struct {
	UserId uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserId)
}

// ByChatSessionID filters rows belonging to a chat session
type ByChatSessionID struct {
	ChatSessionId uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionId)
}

// ByDocumentID filters rows referencing a document
type ByDocumentID struct {
	DocumentId uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentId)
}

// InChatFolder filters chat sessions by folder. A nil folder id selects
// unfiled sessions.
type InChatFolder struct {
	ChatFolderId *uuid.UUID
}

func (s InChatFolder) Apply(db *gorm.DB) *gorm.DB {
	if s.ChatFolderId == nil {
		return db.Where("chat_folder_id IS NULL")
	}
	return db.Where("chat_folder_id = ?", *s.ChatFolderId)
}

// InDocumentFolder filters documents by folder. A nil folder id selects
// unfiled documents.
type InDocumentFolder struct {
	DocumentFolderId *uuid.UUID
}

func (s InDocumentFolder) Apply(db *gorm.DB) *gorm.DB {
	if s.DocumentFolderId == nil {
		return db.Where("document_folder_id IS NULL")
	}
	return db.Where("document_folder_id = ?", *s.DocumentFolderId)
}

// ContextActive filters chat-document links by their context flag
type ContextActive struct {
	Active bool
}

func (s ContextActive) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_context_active = ?", s.Active)
}

// Unread filters notifications that have not been read yet
type Unread struct{}

func (s Unread) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_read = ?", false)
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is a persisted chat. Drafts (no row yet) live in the
// in-memory session store until the first user message lands.
type ChatSession struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Title        string
	Preview      string
	ChatFolderId *uuid.UUID // nil = unfiled ("general chats")
	LastActiveAt time.Time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}

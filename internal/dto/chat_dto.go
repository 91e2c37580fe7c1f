package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	// ChatSessionId is empty for a draft; the first message persists it.
	ChatSessionId *uuid.UUID `json:"chat_session_id"`
	Message       string     `json:"message" validate:"required,min=1"`
}

type SessionResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Preview   string     `json:"preview"`
	TimeLabel string     `json:"time_label"`
	FolderId  *uuid.UUID `json:"folder_id"`
}

type HistoryItemResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type LinkDocumentRequest struct {
	DocumentId      uuid.UUID `json:"document_id" validate:"required"`
	IsContextActive *bool     `json:"is_context_active"` // defaults to true
}

type LinkResponse struct {
	Id              uuid.UUID `json:"id"`
	ChatSessionId   uuid.UUID `json:"chat_session_id"`
	DocumentId      uuid.UUID `json:"document_id"`
	IsContextActive bool      `json:"is_context_active"`
	LinkedAt        time.Time `json:"linked_at"`
}

type DraftAttachRequest struct {
	DocumentId uuid.UUID `json:"document_id" validate:"required"`
}

type DraftStateResponse struct {
	PendingUploadIds []uuid.UUID `json:"pending_upload_ids"`
}

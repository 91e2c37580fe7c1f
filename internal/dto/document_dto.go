package dto

import (
	"time"

	"github.com/google/uuid"
)

type DocumentResponse struct {
	Id         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	SizeLabel  string     `json:"size_label"`
	FolderId   *uuid.UUID `json:"folder_id"`
	UploadedAt time.Time  `json:"uploaded_at"`
}

type UploadDocumentRequest struct {
	FolderId *uuid.UUID `json:"folder_id"`
	// Pending marks the upload as belonging to the current draft chat;
	// the document becomes a context-active link once the draft saves.
	Pending bool `json:"pending"`
}

type UploadDocumentResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	SizeLabel string    `json:"size_label"`
}

// PublishEmbedDocumentMessage is the payload queued for the embedding
// consumer after an upload.
type PublishEmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

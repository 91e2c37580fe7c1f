package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id               uuid.UUID
	Name             string
	Type             string // upper-cased extension tag: PDF, DOCX, TXT, ...
	SizeLabel        string // human label, e.g. "1.2 MB"
	Content          string // extracted text, empty until ingestion ran
	StoragePath      string
	DocumentFolderId *uuid.UUID // nil = unfiled ("general documents")
	UserId           uuid.UUID
	UploadedAt       time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}

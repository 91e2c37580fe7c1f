package dto

import (
	"time"

	"github.com/google/uuid"
)

const (
	FolderKindChat     = "chat"
	FolderKindDocument = "document"
)

type CreateFolderRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Color string `json:"color"` // optional, palette-assigned when empty
}

type FolderResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Kind      string    `json:"kind"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

type MoveEntitiesRequest struct {
	Ids      []uuid.UUID `json:"ids" validate:"required,min=1"`
	FolderId *uuid.UUID  `json:"folder_id"` // nil moves to the unfiled group
}

type MoveEntitiesResponse struct {
	Moved int `json:"moved"`
}

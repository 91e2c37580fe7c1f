package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatFolder struct {
	Id        uuid.UUID
	Name      string
	ColorTag  string
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

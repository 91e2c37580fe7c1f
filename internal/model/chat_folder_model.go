package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatFolder struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string         `gorm:"type:varchar(255);not null"`
	ColorTag  string         `gorm:"type:varchar(64);not null"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ChatFolder) TableName() string {
	return "chat_folders"
}

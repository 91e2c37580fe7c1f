package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string         `gorm:"type:varchar(255);not null"`
	Type             string         `gorm:"type:varchar(16);not null"`
	SizeLabel        string         `gorm:"type:varchar(32);not null"`
	Content          string         `gorm:"type:text"`
	StoragePath      string         `gorm:"type:varchar(512)"`
	DocumentFolderId *uuid.UUID     `gorm:"type:uuid;index"`
	UserId           uuid.UUID      `gorm:"type:uuid;not null;index"`
	UploadedAt       time.Time      `gorm:"not null"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}

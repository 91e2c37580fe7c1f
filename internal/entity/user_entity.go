package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	UserStatusActive  = "active"
	UserStatusPending = "pending"
)

type User struct {
	Id            uuid.UUID
	Email         string
	FullName      string
	PasswordHash  *string
	Status        string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}

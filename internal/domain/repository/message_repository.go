package repository

import (
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(db *gorm.DB, message *entity.Message) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Message, error)
	// FindConversation returns all messages exchanged between two users,
	// oldest first.
	FindConversation(db *gorm.DB, userA, userB uuid.UUID) ([]entity.Message, error)
	FindInboxByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Message, error)
	Update(db *gorm.DB, message *entity.Message) error
	CountUnread(db *gorm.DB, userID uuid.UUID) (int64, error)
}

package repository

import (
	"errors"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"
	domainRepo "github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type messageRepository struct{}

func NewMessageRepository() domainRepo.MessageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(db *gorm.DB, message *entity.Message) error {
	return db.Create(message).Error
}

func (r *messageRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Message, error) {
	var message entity.Message
	err := db.Preload("Sender").Preload("Recipient").Where("id = ?", id).First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) FindConversation(db *gorm.DB, userA, userB uuid.UUID) ([]entity.Message, error) {
	var messages []entity.Message
	err := db.Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userA, userB, userB, userA).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) FindInboxByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Message, error) {
	var messages []entity.Message
	err := db.Preload("Sender").
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) Update(db *gorm.DB, message *entity.Message) error {
	return db.Save(message).Error
}

func (r *messageRepository) CountUnread(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Message{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

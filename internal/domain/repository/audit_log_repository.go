package repository

import (
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindByUserID(db *gorm.DB, userID uuid.UUID, limit int) ([]entity.AuditLog, error)
	FindByAction(db *gorm.DB, action string, limit int) ([]entity.AuditLog, error)
}

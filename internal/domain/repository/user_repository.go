package repository

import (
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	Delete(db *gorm.DB, id uuid.UUID) error
	ExistsByEmail(db *gorm.DB, email string) (bool, error)
	FindApprovedDoctors(db *gorm.DB) ([]entity.User, error)
	FindPendingDoctors(db *gorm.DB) ([]entity.User, error)
	SetVerified(db *gorm.DB, id uuid.UUID) error
	SetApproved(db *gorm.DB, id uuid.UUID) error
	UpdatePassword(db *gorm.DB, id uuid.UUID, hashedPassword string) error
}

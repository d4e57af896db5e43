package repository

import (
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityRepository interface {
	Create(db *gorm.DB, availability *entity.DoctorAvailability) error
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) (*entity.DoctorAvailability, error)
	Update(db *gorm.DB, availability *entity.DoctorAvailability) error
	ReplaceSlots(db *gorm.DB, availabilityID uuid.UUID, slots []entity.TimeSlot) error
	AddSlot(db *gorm.DB, slot *entity.TimeSlot) error
	DeleteSlot(db *gorm.DB, availabilityID, slotID uuid.UUID) (int64, error)
}

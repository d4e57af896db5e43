package repository

import (
	"errors"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"
	domainRepo "github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityRepository struct{}

func NewAvailabilityRepository() domainRepo.AvailabilityRepository {
	return &availabilityRepository{}
}

func (r *availabilityRepository) Create(db *gorm.DB, availability *entity.DoctorAvailability) error {
	return db.Create(availability).Error
}

func (r *availabilityRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) (*entity.DoctorAvailability, error) {
	var availability entity.DoctorAvailability
	err := db.Preload("Slots").Where("doctor_id = ?", doctorID).First(&availability).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &availability, nil
}

func (r *availabilityRepository) Update(db *gorm.DB, availability *entity.DoctorAvailability) error {
	return db.Omit("Slots").Save(availability).Error
}

// ReplaceSlots swaps the full slot list of an aggregate in one transaction.
func (r *availabilityRepository) ReplaceSlots(db *gorm.DB, availabilityID uuid.UUID, slots []entity.TimeSlot) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("availability_id = ?", availabilityID).Delete(&entity.TimeSlot{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		for i := range slots {
			slots[i].AvailabilityID = availabilityID
		}
		return tx.Create(&slots).Error
	})
}

func (r *availabilityRepository) AddSlot(db *gorm.DB, slot *entity.TimeSlot) error {
	return db.Create(slot).Error
}

// DeleteSlot removes one slot and reports affected rows so callers can
// distinguish a missing slot id.
func (r *availabilityRepository) DeleteSlot(db *gorm.DB, availabilityID, slotID uuid.UUID) (int64, error) {
	result := db.Where("id = ? AND availability_id = ?", slotID, availabilityID).Delete(&entity.TimeSlot{})
	return result.RowsAffected, result.Error
}

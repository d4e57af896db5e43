package repository

import (
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Prescription, error)
	FindRecentByPatientID(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.Prescription, error)
	Update(db *gorm.DB, prescription *entity.Prescription) error
	Delete(db *gorm.DB, id uuid.UUID) error
}

package repository

import (
	"time"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindConflict returns a non-cancelled appointment occupying the exact
	// (doctor, date, time) slot, or nil.
	FindConflict(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeOfDay string) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindPendingByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindUpcomingForPatient(db *gorm.DB, patientID uuid.UUID, now time.Time) ([]entity.Appointment, error)
	FindTodayForDoctor(db *gorm.DB, doctorID uuid.UUID, day time.Time) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	// ExistsBetween reports whether the doctor and patient share at least one
	// non-cancelled appointment. Backs the messaging/record authorization rule.
	ExistsBetween(db *gorm.DB, doctorID, patientID uuid.UUID) (bool, error)
	CountPendingByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error)
	CountDistinctPatients(db *gorm.DB, doctorID uuid.UUID) (int64, error)
}

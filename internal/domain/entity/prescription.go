package entity

import (
	"time"

	"github.com/google/uuid"
)

// PrescriptionStatus represents the lifecycle of a prescription
type PrescriptionStatus string

const (
	PrescriptionStatusActive    PrescriptionStatus = "Active"
	PrescriptionStatusCompleted PrescriptionStatus = "Completed"
	PrescriptionStatusExpired   PrescriptionStatus = "Expired"
	PrescriptionStatusRevoked   PrescriptionStatus = "Revoked"
)

// Prescription is issued by a doctor for a patient, optionally tied to an
// appointment.
type Prescription struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id,omitempty"`

	Diagnosis    string             `gorm:"type:text;not null" json:"diagnosis"`
	Medications  MedicationList     `gorm:"type:jsonb" json:"medications"`
	Instructions string             `gorm:"type:text" json:"instructions,omitempty"`
	Notes        string             `gorm:"type:text" json:"notes,omitempty"`
	Status       PrescriptionStatus `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"`

	IsRefillable bool       `gorm:"not null;default:false" json:"is_refillable"`
	RefillCount  int        `gorm:"not null;default:0" json:"refill_count"`
	MaxRefills   int        `gorm:"not null;default:0" json:"max_refills"`
	ExpiryDate   *time.Time `gorm:"type:date" json:"expiry_date,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// IsActive reports whether the prescription can still be filled.
func (p *Prescription) IsActive() bool {
	return p.Status == PrescriptionStatusActive
}

// CanRefill reports whether another refill is allowed.
func (p *Prescription) CanRefill() bool {
	return p.IsActive() && p.IsRefillable && p.RefillCount < p.MaxRefills
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// MedicalRecord is a clinical document a doctor creates for a patient.
type MedicalRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`

	RecordType  string         `gorm:"type:varchar(50);not null" json:"record_type"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Diagnosis   string         `gorm:"type:text" json:"diagnosis,omitempty"`
	Treatment   string         `gorm:"type:text" json:"treatment,omitempty"`
	Attachments pq.StringArray `gorm:"type:text[]" json:"attachments,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMedicalRecordRequest struct {
	PatientID   string   `json:"patient_id" validate:"required,uuid"`
	RecordType  string   `json:"record_type" validate:"required,max=50"`
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description,omitempty"`
	Diagnosis   string   `json:"diagnosis,omitempty"`
	Treatment   string   `json:"treatment,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

type UpdateMedicalRecordRequest struct {
	RecordType  string   `json:"record_type,omitempty" validate:"omitempty,max=50"`
	Title       string   `json:"title,omitempty" validate:"omitempty,max=255"`
	Description string   `json:"description,omitempty"`
	Diagnosis   string   `json:"diagnosis,omitempty"`
	Treatment   string   `json:"treatment,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

type MedicalRecordResponse struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	PatientID uuid.UUID `json:"patient_id"`

	RecordType  string   `json:"record_type"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Diagnosis   string   `json:"diagnosis,omitempty"`
	Treatment   string   `json:"treatment,omitempty"`
	Attachments []string `json:"attachments,omitempty"`

	Doctor  *UserResponse `json:"doctor,omitempty"`
	Patient *UserResponse `json:"patient,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MedicalRecordListResponse struct {
	Records []MedicalRecordResponse `json:"records"`
	Total   int                     `json:"total"`
}

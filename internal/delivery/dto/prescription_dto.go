package dto

import (
	"time"

	"github.com/google/uuid"
)

type MedicationRequest struct {
	Name         string `json:"name" validate:"required"`
	Dosage       string `json:"dosage" validate:"required"`
	Frequency    string `json:"frequency" validate:"required"`
	Duration     string `json:"duration,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type CreatePrescriptionRequest struct {
	PatientID     string              `json:"patient_id" validate:"required,uuid"`
	AppointmentID string              `json:"appointment_id,omitempty" validate:"omitempty,uuid"`
	Diagnosis     string              `json:"diagnosis" validate:"required"`
	Medications   []MedicationRequest `json:"medications" validate:"required,min=1,dive"`
	Instructions  string              `json:"instructions,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	IsRefillable  bool                `json:"is_refillable,omitempty"`
	MaxRefills    int                 `json:"max_refills,omitempty" validate:"omitempty,gte=0"`
	ExpiryDate    string              `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdatePrescriptionRequest struct {
	Diagnosis    string              `json:"diagnosis,omitempty"`
	Medications  []MedicationRequest `json:"medications,omitempty" validate:"omitempty,dive"`
	Instructions string              `json:"instructions,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	Status       string              `json:"status,omitempty" validate:"omitempty,oneof=Active Completed Expired Revoked"`
}

type MedicationResponse struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type PrescriptionResponse struct {
	ID            uuid.UUID  `json:"id"`
	DoctorID      uuid.UUID  `json:"doctor_id"`
	PatientID     uuid.UUID  `json:"patient_id"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`

	Diagnosis    string               `json:"diagnosis"`
	Medications  []MedicationResponse `json:"medications"`
	Instructions string               `json:"instructions,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	Status       string               `json:"status"`

	IsRefillable bool   `json:"is_refillable"`
	RefillCount  int    `json:"refill_count"`
	MaxRefills   int    `json:"max_refills"`
	ExpiryDate   string `json:"expiry_date,omitempty"`

	Doctor  *UserResponse `json:"doctor,omitempty"`
	Patient *UserResponse `json:"patient,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}

package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"
)

type CreateAppointmentRequest struct {
	DoctorID string `json:"doctor_id" validate:"required,uuid"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,datetime=15:04"`
	Type     string `json:"type" validate:"omitempty,oneof='General Consultation' 'Follow-up' 'Specialist Consultation' 'Emergency'"`
	Reason   string `json:"reason" validate:"required"`
}

// GuestAppointmentRequest books without an authenticated patient; contact
// details are stored inline on the appointment.
type GuestAppointmentRequest struct {
	DoctorID   string `json:"doctor_id" validate:"required,uuid"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string `json:"time" validate:"required,datetime=15:04"`
	Type       string `json:"type" validate:"omitempty,oneof='General Consultation' 'Follow-up' 'Specialist Consultation' 'Emergency'"`
	Reason     string `json:"reason" validate:"required"`
	GuestName  string `json:"guest_name" validate:"required,max=255"`
	GuestEmail string `json:"guest_email" validate:"required,email"`
	GuestPhone string `json:"guest_phone" validate:"required,min=10,max=15,numeric"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Confirmed Cancelled Completed 'No Show' 'In Progress'"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason,omitempty"`
}

type AppointmentNotesRequest struct {
	Notes string `json:"notes" validate:"required"`
}

type AppointmentResponse struct {
	ID       uuid.UUID  `json:"id"`
	DoctorID uuid.UUID  `json:"doctor_id"`
	PatientID *uuid.UUID `json:"patient_id,omitempty"`

	IsGuestBooking bool   `json:"is_guest_booking"`
	GuestName      string `json:"guest_name,omitempty"`
	GuestEmail     string `json:"guest_email,omitempty"`
	GuestPhone     string `json:"guest_phone,omitempty"`

	Date     string `json:"date"`
	Time     string `json:"time"`
	Type     string `json:"type"`
	Reason   string `json:"reason"`
	Status   string `json:"status"`
	Notes    string `json:"notes,omitempty"`
	Duration int    `json:"duration"`

	VideoRoom string `json:"video_room,omitempty"`
	IsVirtual bool   `json:"is_virtual"`

	CancellationReason string `json:"cancellation_reason,omitempty"`
	CancelledBy        string `json:"cancelled_by,omitempty"`

	Prescriptions []entity.Medication `json:"prescriptions,omitempty"`

	Doctor  *UserResponse `json:"doctor,omitempty"`
	Patient *UserResponse `json:"patient,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type VideoTokenResponse struct {
	RoomName string `json:"room_name"`
	Token    string `json:"token"`
}

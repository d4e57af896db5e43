package dto

import (
	"time"

	"github.com/google/uuid"
)

type TimeSlotRequest struct {
	Day          string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime    string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime      string `json:"end_time" validate:"required,datetime=15:04"`
	IsAvailable  *bool  `json:"is_available,omitempty"`
	SlotDuration int    `json:"slot_duration,omitempty" validate:"omitempty,gte=5,lte=240"`
}

type UpsertAvailabilityRequest struct {
	Slots          []TimeSlotRequest `json:"slots" validate:"dive"`
	IsOnLeave      *bool             `json:"is_on_leave,omitempty"`
	LeaveStartDate string            `json:"leave_start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LeaveEndDate   string            `json:"leave_end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LeaveReason    string            `json:"leave_reason,omitempty"`
}

type SetLeaveRequest struct {
	IsOnLeave      bool   `json:"is_on_leave"`
	LeaveStartDate string `json:"leave_start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LeaveEndDate   string `json:"leave_end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LeaveReason    string `json:"leave_reason,omitempty"`
}

type TimeSlotResponse struct {
	ID           uuid.UUID `json:"id"`
	Day          string    `json:"day"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	IsAvailable  bool      `json:"is_available"`
	SlotDuration int       `json:"slot_duration"`
}

type AvailabilityResponse struct {
	ID             uuid.UUID          `json:"id"`
	DoctorID       uuid.UUID          `json:"doctor_id"`
	Slots          []TimeSlotResponse `json:"slots"`
	IsOnLeave      bool               `json:"is_on_leave"`
	LeaveStartDate string             `json:"leave_start_date,omitempty"`
	LeaveEndDate   string             `json:"leave_end_date,omitempty"`
	LeaveReason    string             `json:"leave_reason,omitempty"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

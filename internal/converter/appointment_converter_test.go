package converter

import (
	"testing"
	"time"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentToResponse(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()
	appointment := &entity.Appointment{
		ID:              uuid.New(),
		DoctorID:        doctorID,
		PatientID:       &patientID,
		AppointmentDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "14:30",
		Type:            entity.AppointmentTypeFollowUp,
		Reason:          "Checkup",
		Status:          entity.AppointmentStatusConfirmed,
		Duration:        30,
		Doctor:          entity.User{ID: doctorID, Role: entity.RoleDoctor, FirstName: "Sarah"},
		Patient:         &entity.User{ID: patientID, Role: entity.RolePatient, FirstName: "John"},
	}

	resp := AppointmentToResponse(appointment)
	require.NotNil(t, resp)

	assert.Equal(t, "2026-03-15", resp.Date)
	assert.Equal(t, "14:30", resp.Time)
	assert.Equal(t, "Follow-up", resp.Type)
	assert.Equal(t, "Confirmed", resp.Status)
	require.NotNil(t, resp.Doctor)
	assert.Equal(t, "Sarah", resp.Doctor.FirstName)
	require.NotNil(t, resp.Patient)
	assert.Equal(t, "John", resp.Patient.FirstName)
}

func TestAppointmentToResponseGuest(t *testing.T) {
	appointment := &entity.Appointment{
		ID:              uuid.New(),
		DoctorID:        uuid.New(),
		IsGuestBooking:  true,
		GuestName:       "Walk In",
		GuestEmail:      "walkin@example.com",
		AppointmentDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "09:00",
		Status:          entity.AppointmentStatusPending,
	}

	resp := AppointmentToResponse(appointment)
	require.NotNil(t, resp)

	assert.True(t, resp.IsGuestBooking)
	assert.Equal(t, "Walk In", resp.GuestName)
	assert.Nil(t, resp.PatientID)
	assert.Nil(t, resp.Patient)
	// Doctor relation not preloaded, so no embedded doctor.
	assert.Nil(t, resp.Doctor)
}

func TestAppointmentToResponseNil(t *testing.T) {
	assert.Nil(t, AppointmentToResponse(nil))
}

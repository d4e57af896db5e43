package converter

import (
	"github.com/google/uuid"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its response DTO.
// Preloaded Doctor and Patient relations are embedded when present.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:             appointment.ID,
		DoctorID:       appointment.DoctorID,
		PatientID:      appointment.PatientID,
		IsGuestBooking: appointment.IsGuestBooking,
		GuestName:      appointment.GuestName,
		GuestEmail:     appointment.GuestEmail,
		GuestPhone:     appointment.GuestPhone,
		Date:           appointment.AppointmentDate.Format("2006-01-02"),
		Time:           appointment.AppointmentTime,
		Type:           string(appointment.Type),
		Reason:         appointment.Reason,
		Status:         string(appointment.Status),
		Notes:          appointment.Notes,
		Duration:       appointment.Duration,
		VideoRoom:      appointment.VideoRoom,
		IsVirtual:      appointment.IsVirtual,

		CancellationReason: appointment.CancellationReason,
		CancelledBy:        appointment.CancelledBy,

		Prescriptions: appointment.Prescriptions,

		CreatedAt: appointment.CreatedAt,
		UpdatedAt: appointment.UpdatedAt,
	}

	if appointment.Doctor.ID != uuid.Nil {
		response.Doctor = UserToResponse(&appointment.Doctor)
	}
	if appointment.Patient != nil {
		response.Patient = UserToResponse(appointment.Patient)
	}

	return response
}

// AppointmentsToResponses converts a slice of appointments
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

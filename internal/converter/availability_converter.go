package converter

import (
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"
)

// AvailabilityToResponse converts a DoctorAvailability aggregate, slots included
func AvailabilityToResponse(availability *entity.DoctorAvailability) *dto.AvailabilityResponse {
	if availability == nil {
		return nil
	}

	response := &dto.AvailabilityResponse{
		ID:          availability.ID,
		DoctorID:    availability.DoctorID,
		Slots:       make([]dto.TimeSlotResponse, len(availability.Slots)),
		IsOnLeave:   availability.IsOnLeave,
		LeaveReason: availability.LeaveReason,
		UpdatedAt:   availability.UpdatedAt,
	}

	if availability.LeaveStartDate != nil {
		response.LeaveStartDate = availability.LeaveStartDate.Format("2006-01-02")
	}
	if availability.LeaveEndDate != nil {
		response.LeaveEndDate = availability.LeaveEndDate.Format("2006-01-02")
	}

	for i, slot := range availability.Slots {
		response.Slots[i] = dto.TimeSlotResponse{
			ID:           slot.ID,
			Day:          slot.Day,
			StartTime:    slot.StartTime,
			EndTime:      slot.EndTime,
			IsAvailable:  slot.IsAvailable,
			SlotDuration: slot.SlotDuration,
		}
	}

	return response
}

package usecase

import (
	"testing"
	"time"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimeSlot(t *testing.T) {
	availabilityID := uuid.New()

	slot, err := buildTimeSlot(availabilityID, &dto.TimeSlotRequest{
		Day:       "Monday",
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	require.NoError(t, err)
	assert.Equal(t, availabilityID, slot.AvailabilityID)
	assert.Equal(t, "Monday", slot.Day)
	assert.Equal(t, "09:00", slot.StartTime)
	assert.Equal(t, "12:00", slot.EndTime)
	assert.True(t, slot.IsAvailable)
	assert.Equal(t, defaultSlotDuration, slot.SlotDuration)
}

func TestBuildTimeSlotOverrides(t *testing.T) {
	unavailable := false

	slot, err := buildTimeSlot(uuid.New(), &dto.TimeSlotRequest{
		Day:          "Friday",
		StartTime:    "14:00",
		EndTime:      "17:00",
		IsAvailable:  &unavailable,
		SlotDuration: 45,
	})
	require.NoError(t, err)
	assert.False(t, slot.IsAvailable)
	assert.Equal(t, 45, slot.SlotDuration)
}

func TestBuildTimeSlotErrors(t *testing.T) {
	tests := []struct {
		name string
		req  dto.TimeSlotRequest
		want error
	}{
		{"unknown weekday", dto.TimeSlotRequest{Day: "Funday", StartTime: "09:00", EndTime: "12:00"}, ErrInvalidWeekday},
		{"lowercase weekday", dto.TimeSlotRequest{Day: "monday", StartTime: "09:00", EndTime: "12:00"}, ErrInvalidWeekday},
		{"bad start time", dto.TimeSlotRequest{Day: "Monday", StartTime: "9am", EndTime: "12:00"}, ErrInvalidTimeRange},
		{"bad end time", dto.TimeSlotRequest{Day: "Monday", StartTime: "09:00", EndTime: "noon"}, ErrInvalidTimeRange},
		{"start equals end", dto.TimeSlotRequest{Day: "Monday", StartTime: "09:00", EndTime: "09:00"}, ErrInvalidTimeRange},
		{"start after end", dto.TimeSlotRequest{Day: "Monday", StartTime: "12:00", EndTime: "09:00"}, ErrInvalidTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildTimeSlot(uuid.New(), &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestApplyLeaveSetsPeriod(t *testing.T) {
	availability := &entity.DoctorAvailability{}

	err := applyLeave(availability, true, "2026-06-01", "2026-06-14", "Vacation")
	require.NoError(t, err)
	assert.True(t, availability.IsOnLeave)
	assert.Equal(t, "Vacation", availability.LeaveReason)
	require.NotNil(t, availability.LeaveStartDate)
	require.NotNil(t, availability.LeaveEndDate)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), *availability.LeaveStartDate)
	assert.Equal(t, time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC), *availability.LeaveEndDate)
}

func TestApplyLeaveClearResetsFields(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	availability := &entity.DoctorAvailability{
		IsOnLeave:      true,
		LeaveStartDate: &start,
		LeaveEndDate:   &end,
		LeaveReason:    "Vacation",
	}

	err := applyLeave(availability, false, "", "", "")
	require.NoError(t, err)
	assert.False(t, availability.IsOnLeave)
	assert.Nil(t, availability.LeaveStartDate)
	assert.Nil(t, availability.LeaveEndDate)
	assert.Empty(t, availability.LeaveReason)
}

func TestApplyLeaveInvalidDates(t *testing.T) {
	availability := &entity.DoctorAvailability{}

	err := applyLeave(availability, true, "06/01/2026", "", "Vacation")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	err = applyLeave(availability, true, "", "June 14", "Vacation")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestApplyLeaveStartAfterEnd(t *testing.T) {
	availability := &entity.DoctorAvailability{}

	err := applyLeave(availability, true, "2026-06-14", "2026-06-01", "Vacation")
	assert.ErrorIs(t, err, ErrInvalidLeaveRange)
}

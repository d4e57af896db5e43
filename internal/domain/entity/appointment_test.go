package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"pending to confirmed", AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{"pending to cancelled", AppointmentStatusPending, AppointmentStatusCancelled, true},
		{"pending to completed", AppointmentStatusPending, AppointmentStatusCompleted, false},
		{"pending to in progress", AppointmentStatusPending, AppointmentStatusInProgress, false},
		{"pending to no show", AppointmentStatusPending, AppointmentStatusNoShow, false},
		{"confirmed to in progress", AppointmentStatusConfirmed, AppointmentStatusInProgress, true},
		{"confirmed to cancelled", AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{"confirmed to no show", AppointmentStatusConfirmed, AppointmentStatusNoShow, true},
		{"confirmed to completed", AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{"confirmed to pending", AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{"in progress to completed", AppointmentStatusInProgress, AppointmentStatusCompleted, true},
		{"in progress to cancelled", AppointmentStatusInProgress, AppointmentStatusCancelled, false},
		{"cancelled is terminal", AppointmentStatusCancelled, AppointmentStatusPending, false},
		{"completed is terminal", AppointmentStatusCompleted, AppointmentStatusInProgress, false},
		{"no show is terminal", AppointmentStatusNoShow, AppointmentStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Appointment{Status: tt.from}
			assert.Equal(t, tt.allowed, a.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointmentIsCancellable(t *testing.T) {
	tests := []struct {
		status      AppointmentStatus
		cancellable bool
	}{
		{AppointmentStatusPending, true},
		{AppointmentStatusConfirmed, true},
		{AppointmentStatusInProgress, false},
		{AppointmentStatusCompleted, false},
		{AppointmentStatusCancelled, false},
		{AppointmentStatusNoShow, false},
	}

	for _, tt := range tests {
		a := &Appointment{Status: tt.status}
		assert.Equal(t, tt.cancellable, a.IsCancellable(), "status %s", tt.status)
	}
}

func TestAppointmentStartsAt(t *testing.T) {
	a := &Appointment{
		AppointmentDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "14:30",
	}

	got := a.StartsAt()
	assert.Equal(t, time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC), got)
}

func TestAppointmentStartsAtInvalidTime(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	a := &Appointment{AppointmentDate: date, AppointmentTime: "not-a-time"}

	assert.Equal(t, date, a.StartsAt())
}

func TestAppointmentWithinCancellationCutoff(t *testing.T) {
	a := &Appointment{
		AppointmentDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "10:00",
	}

	tests := []struct {
		name   string
		now    time.Time
		within bool
	}{
		{"two days before", time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC), false},
		{"exactly 24 hours before", time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), false},
		{"twelve hours before", time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC), true},
		{"after start", time.Date(2026, 3, 15, 11, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.within, a.WithinCancellationCutoff(tt.now))
		})
	}
}

func TestMedicationListValueAndScan(t *testing.T) {
	list := MedicationList{
		{Name: "Amoxicillin", Dosage: "500mg", Frequency: "3x daily", Duration: "7 days"},
		{Name: "Ibuprofen", Dosage: "200mg", Frequency: "as needed"},
	}

	value, err := list.Value()
	assert.NoError(t, err)

	var scanned MedicationList
	err = scanned.Scan(value)
	assert.NoError(t, err)
	assert.Equal(t, list, scanned)
}

func TestMedicationListValueEmpty(t *testing.T) {
	var list MedicationList

	value, err := list.Value()
	assert.NoError(t, err)
	assert.Nil(t, value)
}

func TestMedicationListScanNil(t *testing.T) {
	scanned := MedicationList{{Name: "stale"}}

	err := scanned.Scan(nil)
	assert.NoError(t, err)
	assert.Nil(t, scanned)
}

func TestMedicationListScanUnsupportedType(t *testing.T) {
	var scanned MedicationList
	assert.Error(t, scanned.Scan(42))
}

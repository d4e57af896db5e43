package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending    AppointmentStatus = "Pending"
	AppointmentStatusConfirmed  AppointmentStatus = "Confirmed"
	AppointmentStatusCancelled  AppointmentStatus = "Cancelled"
	AppointmentStatusCompleted  AppointmentStatus = "Completed"
	AppointmentStatusNoShow     AppointmentStatus = "No Show"
	AppointmentStatusInProgress AppointmentStatus = "In Progress"
)

// AppointmentType categorizes the consultation
type AppointmentType string

const (
	AppointmentTypeGeneral    AppointmentType = "General Consultation"
	AppointmentTypeFollowUp   AppointmentType = "Follow-up"
	AppointmentTypeSpecialist AppointmentType = "Specialist Consultation"
	AppointmentTypeEmergency  AppointmentType = "Emergency"
)

// CancellationCutoff is the window before the appointment start inside which
// the business rule discourages cancellation.
const CancellationCutoff = 24 * time.Hour

// Medication is a single prescribed medication embedded on an appointment
// or prescription.
type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// MedicationList stores medications as a JSONB column
type MedicationList []Medication

// Value returns json value, implements driver.Valuer interface
func (m MedicationList) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan scans value into MedicationList, implements sql.Scanner interface
func (m *MedicationList) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	var result []Medication
	err := json.Unmarshal(bytes, &result)
	*m = MedicationList(result)
	return err
}

// Appointment represents a consultation between a doctor and either a
// registered patient or a guest. Guest bookings carry contact details inline
// instead of a patient reference. A partial unique index on
// (doctor_id, appointment_date, appointment_time) over non-cancelled rows
// backs the booking conflict check.
type Appointment struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID *uuid.UUID `gorm:"type:uuid;index" json:"patient_id,omitempty"`

	IsGuestBooking bool   `gorm:"not null;default:false" json:"is_guest_booking"`
	GuestName      string `gorm:"type:varchar(255)" json:"guest_name,omitempty"`
	GuestEmail     string `gorm:"type:varchar(255)" json:"guest_email,omitempty"`
	GuestPhone     string `gorm:"type:varchar(20)" json:"guest_phone,omitempty"`

	AppointmentDate time.Time         `gorm:"type:date;not null;index" json:"appointment_date"`
	AppointmentTime string            `gorm:"type:varchar(5);not null" json:"appointment_time"`
	Type            AppointmentType   `gorm:"type:varchar(50);not null;default:'General Consultation'" json:"type"`
	Reason          string            `gorm:"type:text;not null" json:"reason"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`

	VideoRoom string `gorm:"type:varchar(255)" json:"video_room,omitempty"`
	IsVirtual bool   `gorm:"not null;default:true" json:"is_virtual"`
	Duration  int    `gorm:"not null;default:30" json:"duration"`

	CancellationReason string `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledBy        string `gorm:"type:varchar(10)" json:"cancelled_by,omitempty"`

	Prescriptions MedicationList `gorm:"type:jsonb" json:"prescriptions,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  User  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsTerminal reports whether the appointment reached a final state.
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// IsCancellable reports whether a cancellation is allowed from the current
// status. Only Pending and Confirmed appointments can be cancelled.
func (a *Appointment) IsCancellable() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

// StartsAt combines the date and HH:MM time into a single instant (UTC).
func (a *Appointment) StartsAt() time.Time {
	clock, err := time.Parse("15:04", a.AppointmentTime)
	if err != nil {
		return a.AppointmentDate
	}
	d := a.AppointmentDate
	return time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}

// WithinCancellationCutoff reports whether now falls inside the 24-hour
// window before the appointment start. Informational only; cancellation is
// not refused on this alone.
func (a *Appointment) WithinCancellationCutoff(now time.Time) bool {
	return a.StartsAt().Sub(now) < CancellationCutoff
}

// CanTransitionTo reports whether the status change is legal. Terminal
// states are immutable.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if a.IsTerminal() {
		return false
	}
	switch a.Status {
	case AppointmentStatusPending:
		return next == AppointmentStatusConfirmed || next == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		switch next {
		case AppointmentStatusInProgress, AppointmentStatusCancelled,
			AppointmentStatusNoShow, AppointmentStatusCompleted:
			return true
		}
		return false
	case AppointmentStatusInProgress:
		return next == AppointmentStatusCompleted
	}
	return false
}

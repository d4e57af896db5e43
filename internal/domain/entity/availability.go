package entity

import (
	"time"

	"github.com/google/uuid"
)

// Weekday names accepted for recurring slots
var WeekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// IsValidWeekday reports whether day is one of the seven weekday names.
func IsValidWeekday(day string) bool {
	for _, d := range WeekdayNames {
		if d == day {
			return true
		}
	}
	return false
}

// TimeSlot is a recurring weekly window in which a doctor accepts
// appointments. Times are HH:MM strings; StartTime must precede EndTime.
type TimeSlot struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AvailabilityID uuid.UUID `gorm:"type:uuid;not null;index" json:"availability_id"`
	Day            string    `gorm:"type:varchar(10);not null" json:"day"`
	StartTime      string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime        string    `gorm:"type:varchar(5);not null" json:"end_time"`
	IsAvailable    bool      `gorm:"not null;default:true" json:"is_available"`
	SlotDuration   int       `gorm:"not null;default:30" json:"slot_duration"`
}

func (TimeSlot) TableName() string {
	return "time_slots"
}

// DoctorAvailability is the per-doctor aggregate of recurring slots and a
// leave period. One row per doctor, created lazily on first access.
type DoctorAvailability struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"doctor_id"`

	IsOnLeave      bool       `gorm:"not null;default:false" json:"is_on_leave"`
	LeaveStartDate *time.Time `gorm:"type:date" json:"leave_start_date,omitempty"`
	LeaveEndDate   *time.Time `gorm:"type:date" json:"leave_end_date,omitempty"`
	LeaveReason    string     `gorm:"type:text" json:"leave_reason,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Slots  []TimeSlot `gorm:"foreignKey:AvailabilityID;constraint:OnDelete:CASCADE" json:"slots"`
	Doctor User       `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (DoctorAvailability) TableName() string {
	return "doctor_availabilities"
}

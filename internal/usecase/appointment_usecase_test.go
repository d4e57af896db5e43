package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/config"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (s *stubUserRepo) Create(db *gorm.DB, user *entity.User) error { return nil }
func (s *stubUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}
func (s *stubUserRepo) Update(db *gorm.DB, user *entity.User) error             { return nil }
func (s *stubUserRepo) Delete(db *gorm.DB, id uuid.UUID) error                  { return nil }
func (s *stubUserRepo) ExistsByEmail(db *gorm.DB, email string) (bool, error)   { return false, nil }
func (s *stubUserRepo) FindApprovedDoctors(db *gorm.DB) ([]entity.User, error)  { return nil, nil }
func (s *stubUserRepo) FindPendingDoctors(db *gorm.DB) ([]entity.User, error)   { return nil, nil }
func (s *stubUserRepo) SetVerified(db *gorm.DB, id uuid.UUID) error             { return nil }
func (s *stubUserRepo) SetApproved(db *gorm.DB, id uuid.UUID) error             { return nil }
func (s *stubUserRepo) UpdatePassword(db *gorm.DB, id uuid.UUID, hash string) error {
	return nil
}

type stubAppointmentRepo struct {
	conflict *entity.Appointment
	created  []*entity.Appointment
}

func (s *stubAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	s.created = append(s.created, appointment)
	return nil
}
func (s *stubAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return nil, nil
}
func (s *stubAppointmentRepo) FindConflict(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeOfDay string) (*entity.Appointment, error) {
	if s.conflict != nil && s.conflict.AppointmentTime == timeOfDay && s.conflict.AppointmentDate.Equal(date) {
		return s.conflict, nil
	}
	return nil, nil
}
func (s *stubAppointmentRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	return nil, nil
}
func (s *stubAppointmentRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	return nil, nil
}
func (s *stubAppointmentRepo) FindPendingByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	return nil, nil
}
func (s *stubAppointmentRepo) FindUpcomingForPatient(db *gorm.DB, patientID uuid.UUID, now time.Time) ([]entity.Appointment, error) {
	return nil, nil
}
func (s *stubAppointmentRepo) FindTodayForDoctor(db *gorm.DB, doctorID uuid.UUID, day time.Time) ([]entity.Appointment, error) {
	return nil, nil
}
func (s *stubAppointmentRepo) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return nil
}
func (s *stubAppointmentRepo) ExistsBetween(db *gorm.DB, doctorID, patientID uuid.UUID) (bool, error) {
	return false, nil
}
func (s *stubAppointmentRepo) CountPendingByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	return 0, nil
}
func (s *stubAppointmentRepo) CountDistinctPatients(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	return 0, nil
}

type stubAvailabilityRepo struct{}

func (s *stubAvailabilityRepo) Create(db *gorm.DB, availability *entity.DoctorAvailability) error {
	return nil
}
func (s *stubAvailabilityRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) (*entity.DoctorAvailability, error) {
	return nil, nil
}
func (s *stubAvailabilityRepo) Update(db *gorm.DB, availability *entity.DoctorAvailability) error {
	return nil
}
func (s *stubAvailabilityRepo) ReplaceSlots(db *gorm.DB, availabilityID uuid.UUID, slots []entity.TimeSlot) error {
	return nil
}
func (s *stubAvailabilityRepo) AddSlot(db *gorm.DB, slot *entity.TimeSlot) error { return nil }
func (s *stubAvailabilityRepo) DeleteSlot(db *gorm.DB, availabilityID, slotID uuid.UUID) (int64, error) {
	return 0, nil
}

type stubAuditService struct{}

func (s *stubAuditService) Record(tx *gorm.DB, userID *uuid.UUID, action string, metadata entity.JSON) error {
	return nil
}

func newBookingFixture(t *testing.T) (AppointmentUsecase, *stubAppointmentRepo, sqlmock.Sqlmock, uuid.UUID) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	doctorID := uuid.New()
	userRepo := &stubUserRepo{users: map[uuid.UUID]*entity.User{
		doctorID: {ID: doctorID, Role: entity.RoleDoctor, IsVerified: true, IsApproved: true},
	}}
	appointmentRepo := &stubAppointmentRepo{}

	uc := NewAppointmentUsecase(
		db,
		logrus.New(),
		appointmentRepo,
		userRepo,
		&stubAvailabilityRepo{},
		service.NewMailService(config.SMTPConfig{}, logrus.New()),
		nil,
		&stubAuditService{},
	)
	return uc, appointmentRepo, mock, doctorID
}

func TestBookConflictingSlotRejected(t *testing.T) {
	uc, appointmentRepo, mock, doctorID := newBookingFixture(t)

	date := time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02")
	req := &dto.CreateAppointmentRequest{
		DoctorID: doctorID.String(),
		Date:     date,
		Time:     "10:00",
		Reason:   "Checkup",
	}

	// First booking of the slot goes through.
	mock.ExpectBegin()
	mock.ExpectCommit()
	booked, err := uc.Book(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	require.Len(t, appointmentRepo.created, 1)
	assert.Equal(t, string(entity.AppointmentStatusPending), booked.Status)

	// Second booking of the same (doctor, date, time) is rejected.
	appointmentRepo.conflict = appointmentRepo.created[0]
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = uc.Book(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
	assert.Len(t, appointmentRepo.created, 1)

	// A different time on the same day is still free.
	mock.ExpectBegin()
	mock.ExpectCommit()
	req.Time = "11:00"
	_, err = uc.Book(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.Len(t, appointmentRepo.created, 2)
}

func TestBookUnapprovedDoctorRejected(t *testing.T) {
	uc, _, _, _ := newBookingFixture(t)

	req := &dto.CreateAppointmentRequest{
		DoctorID: uuid.New().String(),
		Date:     time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02"),
		Time:     "10:00",
		Reason:   "Checkup",
	}

	_, err := uc.Book(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestWithinLeavePeriod(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		availability entity.DoctorAvailability
		date         time.Time
		want         bool
	}{
		{
			name:         "inside period",
			availability: entity.DoctorAvailability{LeaveStartDate: &start, LeaveEndDate: &end},
			date:         time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC),
			want:         true,
		},
		{
			name:         "first day",
			availability: entity.DoctorAvailability{LeaveStartDate: &start, LeaveEndDate: &end},
			date:         start,
			want:         true,
		},
		{
			name:         "last day",
			availability: entity.DoctorAvailability{LeaveStartDate: &start, LeaveEndDate: &end},
			date:         end,
			want:         true,
		},
		{
			name:         "before period",
			availability: entity.DoctorAvailability{LeaveStartDate: &start, LeaveEndDate: &end},
			date:         time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
			want:         false,
		},
		{
			name:         "after period",
			availability: entity.DoctorAvailability{LeaveStartDate: &start, LeaveEndDate: &end},
			date:         time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
			want:         false,
		},
		{
			name:         "no bounds blocks everything",
			availability: entity.DoctorAvailability{},
			date:         time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
			want:         true,
		},
		{
			name:         "open end still respects start",
			availability: entity.DoctorAvailability{LeaveStartDate: &start},
			date:         time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
			want:         false,
		},
		{
			name:         "open end after start",
			availability: entity.DoctorAvailability{LeaveStartDate: &start},
			date:         time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
			want:         true,
		},
		{
			name:         "open start before end",
			availability: entity.DoctorAvailability{LeaveEndDate: &end},
			date:         time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
			want:         true,
		},
		{
			name:         "open start after end",
			availability: entity.DoctorAvailability{LeaveEndDate: &end},
			date:         time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, withinLeavePeriod(&tt.availability, tt.date))
		})
	}
}

package usecase

import (
	"context"
	"time"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/converter"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const recentPrescriptionLimit = 5

type DashboardUsecase interface {
	PatientDashboard(ctx context.Context, patientID uuid.UUID) (*dto.PatientDashboardResponse, error)
	DoctorDashboard(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorDashboardResponse, error)
}

type dashboardUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	appointmentRepo  repository.AppointmentRepository
	prescriptionRepo repository.PrescriptionRepository
	messageRepo      repository.MessageRepository
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	prescriptionRepo repository.PrescriptionRepository,
	messageRepo repository.MessageRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		db:               db,
		log:              log,
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
		messageRepo:      messageRepo,
	}
}

func (u *dashboardUsecase) PatientDashboard(ctx context.Context, patientID uuid.UUID) (*dto.PatientDashboardResponse, error) {
	db := u.db.WithContext(ctx)
	now := time.Now().UTC()

	upcoming, err := u.appointmentRepo.FindUpcomingForPatient(db, patientID, now)
	if err != nil {
		u.log.Warnf("Failed to load upcoming appointments: %+v", err)
		return nil, err
	}

	prescriptions, err := u.prescriptionRepo.FindRecentByPatientID(db, patientID, recentPrescriptionLimit)
	if err != nil {
		u.log.Warnf("Failed to load recent prescriptions: %+v", err)
		return nil, err
	}

	unread, err := u.messageRepo.CountUnread(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to count unread messages: %+v", err)
		return nil, err
	}

	return &dto.PatientDashboardResponse{
		UpcomingAppointments: converter.AppointmentsToResponses(upcoming),
		RecentPrescriptions:  converter.PrescriptionsToResponses(prescriptions),
		UnreadMessages:       unread,
	}, nil
}

func (u *dashboardUsecase) DoctorDashboard(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorDashboardResponse, error) {
	db := u.db.WithContext(ctx)
	today := time.Now().UTC().Truncate(24 * time.Hour)

	todayAppointments, err := u.appointmentRepo.FindTodayForDoctor(db, doctorID, today)
	if err != nil {
		u.log.Warnf("Failed to load today's appointments: %+v", err)
		return nil, err
	}

	pending, err := u.appointmentRepo.CountPendingByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to count pending appointments: %+v", err)
		return nil, err
	}

	patients, err := u.appointmentRepo.CountDistinctPatients(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to count distinct patients: %+v", err)
		return nil, err
	}

	unread, err := u.messageRepo.CountUnread(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to count unread messages: %+v", err)
		return nil, err
	}

	return &dto.DoctorDashboardResponse{
		TodayAppointments:   converter.AppointmentsToResponses(todayAppointments),
		PendingAppointments: pending,
		TotalPatients:       patients,
		UnreadMessages:      unread,
	}, nil
}

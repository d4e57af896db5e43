package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/converter"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/repository"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrSlotAlreadyBooked       = errors.New("the selected slot is already booked")
	ErrAppointmentInPast       = errors.New("appointment time is in the past")
	ErrDoctorOnLeave           = errors.New("doctor is on leave for the selected date")
	ErrOutsideAvailability     = errors.New("the selected time is outside the doctor's availability")
	ErrNotParticipant          = errors.New("not a participant of this appointment")
	ErrInvalidStatusTransition = errors.New("invalid appointment status transition")
	ErrNotCancellable          = errors.New("appointment can no longer be cancelled")
	ErrVideoNotStarted         = errors.New("video call has not been started")
)

type AppointmentUsecase interface {
	Book(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	BookGuest(ctx context.Context, req *dto.GuestAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID) (*dto.AppointmentResponse, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error)
	ListPendingForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error)
	UpdateStatus(ctx context.Context, doctorID, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error)
	AddNotes(ctx context.Context, doctorID, id uuid.UUID, req *dto.AppointmentNotesRequest) (*dto.AppointmentResponse, error)
	StartVideoCall(ctx context.Context, doctorID, id uuid.UUID) (*dto.VideoTokenResponse, error)
	JoinVideoCall(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID) (*dto.VideoTokenResponse, error)
	EndVideoCall(ctx context.Context, doctorID, id uuid.UUID) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	appointmentRepo  repository.AppointmentRepository
	userRepo         repository.UserRepository
	availabilityRepo repository.AvailabilityRepository
	mailService      *service.MailService
	videoService     *service.VideoService
	auditService     service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	availabilityRepo repository.AvailabilityRepository,
	mailService *service.MailService,
	videoService *service.VideoService,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:               db,
		log:              log,
		appointmentRepo:  appointmentRepo,
		userRepo:         userRepo,
		availabilityRepo: availabilityRepo,
		mailService:      mailService,
		videoService:     videoService,
		auditService:     auditService,
	}
}

func (u *appointmentUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.prepareBooking(ctx, req.DoctorID, req.Date, req.Time, req.Type, req.Reason)
	if err != nil {
		return nil, err
	}
	appointment.PatientID = &patientID

	if err := u.createBooking(ctx, appointment, &patientID); err != nil {
		return nil, err
	}

	if patient, err := u.userRepo.FindByID(u.db.WithContext(ctx), patientID); err == nil && patient != nil {
		u.sendBookingConfirmation(appointment, patient.Email, patient.DisplayName())
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) BookGuest(ctx context.Context, req *dto.GuestAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.prepareBooking(ctx, req.DoctorID, req.Date, req.Time, req.Type, req.Reason)
	if err != nil {
		return nil, err
	}
	appointment.IsGuestBooking = true
	appointment.GuestName = req.GuestName
	appointment.GuestEmail = req.GuestEmail
	appointment.GuestPhone = req.GuestPhone

	if err := u.createBooking(ctx, appointment, nil); err != nil {
		return nil, err
	}

	u.sendBookingConfirmation(appointment, req.GuestEmail, req.GuestName)

	return converter.AppointmentToResponse(appointment), nil
}

// prepareBooking validates the doctor and the requested slot and returns an
// unsaved appointment.
func (u *appointmentUsecase) prepareBooking(ctx context.Context, doctorIDRaw, date, timeOfDay, appointmentType, reason string) (*entity.Appointment, error) {
	doctorID, err := uuid.Parse(doctorIDRaw)
	if err != nil {
		return nil, ErrDoctorNotFound
	}

	doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() || !doctor.IsApproved {
		return nil, ErrDoctorNotFound
	}

	appointmentDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	appointment := &entity.Appointment{
		DoctorID:        doctorID,
		AppointmentDate: appointmentDate,
		AppointmentTime: timeOfDay,
		Reason:          reason,
		Status:          entity.AppointmentStatusPending,
		IsVirtual:       true,
		Duration:        defaultSlotDuration,
	}
	if appointmentType != "" {
		appointment.Type = entity.AppointmentType(appointmentType)
	} else {
		appointment.Type = entity.AppointmentTypeGeneral
	}

	if appointment.StartsAt().Before(time.Now().UTC()) {
		return nil, ErrAppointmentInPast
	}

	if err := u.checkAvailability(ctx, doctorID, appointment); err != nil {
		return nil, err
	}

	return appointment, nil
}

// checkAvailability enforces the doctor's leave period and weekly slots.
// A doctor with no configured slots accepts any time.
func (u *appointmentUsecase) checkAvailability(ctx context.Context, doctorID uuid.UUID, appointment *entity.Appointment) error {
	availability, err := u.availabilityRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find availability: %+v", err)
		return err
	}
	if availability == nil {
		return nil
	}

	if availability.IsOnLeave && withinLeavePeriod(availability, appointment.AppointmentDate) {
		return ErrDoctorOnLeave
	}

	if len(availability.Slots) == 0 {
		return nil
	}

	weekday := appointment.AppointmentDate.Weekday().String()
	for _, slot := range availability.Slots {
		if !slot.IsAvailable || slot.Day != weekday {
			continue
		}
		if appointment.AppointmentTime >= slot.StartTime && appointment.AppointmentTime < slot.EndTime {
			if slot.SlotDuration > 0 {
				appointment.Duration = slot.SlotDuration
			}
			return nil
		}
	}
	return ErrOutsideAvailability
}

// withinLeavePeriod treats a nil start as already started and a nil end as
// never ending.
func withinLeavePeriod(availability *entity.DoctorAvailability, date time.Time) bool {
	if availability.LeaveStartDate != nil && date.Before(*availability.LeaveStartDate) {
		return false
	}
	if availability.LeaveEndDate != nil && date.After(*availability.LeaveEndDate) {
		return false
	}
	return true
}

// createBooking runs the conflict check and insert in one transaction. The
// partial unique index on non-cancelled (doctor, date, time) rows catches the
// race between concurrent bookings of the same slot.
func (u *appointmentUsecase) createBooking(ctx context.Context, appointment *entity.Appointment, actorID *uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	conflict, err := u.appointmentRepo.FindConflict(tx, appointment.DoctorID, appointment.AppointmentDate, appointment.AppointmentTime)
	if err != nil {
		u.log.Warnf("Failed to check booking conflict: %+v", err)
		return err
	}
	if conflict != nil {
		return ErrSlotAlreadyBooked
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "appointments") {
			return ErrSlotAlreadyBooked
		}
		if isForeignKeyError(err, "doctor") {
			return ErrDoctorNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return err
	}

	if err := u.auditService.Record(tx, actorID, entity.AuditActionAppointmentBook, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"doctor_id":      appointment.DoctorID.String(),
		"date":           appointment.AppointmentDate.Format("2006-01-02"),
		"time":           appointment.AppointmentTime,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAuthorized(ctx, userID, role, id)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListPendingForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindPendingByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list pending appointments: %+v", err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) UpdateStatus(ctx context.Context, doctorID, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctorID {
		return nil, ErrNotParticipant
	}

	next := entity.AppointmentStatus(req.Status)
	if !appointment.CanTransitionTo(next) {
		return nil, ErrInvalidStatusTransition
	}

	previous := appointment.Status
	appointment.Status = next
	if next == entity.AppointmentStatusCancelled {
		appointment.CancelledBy = "doctor"
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}
	if err := u.auditService.Record(tx, &doctorID, entity.AuditActionAppointmentStatus, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"from":           string(previous),
		"to":             string(next),
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Cancel(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAuthorized(ctx, userID, role, id)
	if err != nil {
		return nil, err
	}
	if !appointment.IsCancellable() {
		return nil, ErrNotCancellable
	}

	if appointment.WithinCancellationCutoff(time.Now().UTC()) {
		u.log.Infof("Appointment %s cancelled inside the cutoff window", appointment.ID)
	}

	appointment.Status = entity.AppointmentStatusCancelled
	appointment.CancellationReason = req.Reason
	appointment.CancelledBy = role

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to cancel appointment: %+v", err)
		return nil, err
	}
	if err := u.auditService.Record(tx, &userID, entity.AuditActionAppointmentCancel, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"reason":         req.Reason,
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notifyCancellation(ctx, appointment, role)

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) AddNotes(ctx context.Context, doctorID, id uuid.UUID, req *dto.AppointmentNotesRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctorID {
		return nil, ErrNotParticipant
	}

	appointment.Notes = req.Notes
	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Warnf("Failed to update appointment notes: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) StartVideoCall(ctx context.Context, doctorID, id uuid.UUID) (*dto.VideoTokenResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctorID {
		return nil, ErrNotParticipant
	}

	if appointment.VideoRoom == "" {
		roomName := fmt.Sprintf("appointment-%s", appointment.ID.String())
		if err := u.videoService.CreateRoom(roomName); err != nil {
			return nil, err
		}
		appointment.VideoRoom = roomName
		if appointment.Status == entity.AppointmentStatusConfirmed {
			appointment.Status = entity.AppointmentStatusInProgress
		}
		if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
			u.log.Warnf("Failed to store video room: %+v", err)
			return nil, err
		}
	}

	token, err := u.videoService.IssueToken(appointment.VideoRoom, fmt.Sprintf("doctor-%s", doctorID))
	if err != nil {
		u.log.Warnf("Failed to issue video token: %+v", err)
		return nil, err
	}

	return &dto.VideoTokenResponse{RoomName: appointment.VideoRoom, Token: token}, nil
}

func (u *appointmentUsecase) JoinVideoCall(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID) (*dto.VideoTokenResponse, error) {
	appointment, err := u.findAuthorized(ctx, userID, role, id)
	if err != nil {
		return nil, err
	}
	if appointment.VideoRoom == "" {
		return nil, ErrVideoNotStarted
	}

	token, err := u.videoService.IssueToken(appointment.VideoRoom, fmt.Sprintf("%s-%s", role, userID))
	if err != nil {
		u.log.Warnf("Failed to issue video token: %+v", err)
		return nil, err
	}

	return &dto.VideoTokenResponse{RoomName: appointment.VideoRoom, Token: token}, nil
}

func (u *appointmentUsecase) EndVideoCall(ctx context.Context, doctorID, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctorID {
		return nil, ErrNotParticipant
	}
	if appointment.VideoRoom == "" {
		return nil, ErrVideoNotStarted
	}

	if appointment.CanTransitionTo(entity.AppointmentStatusCompleted) {
		appointment.Status = entity.AppointmentStatusCompleted
	}
	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Warnf("Failed to complete appointment: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// findAuthorized loads the appointment and checks the caller is a
// participant. Admins may read any appointment.
func (u *appointmentUsecase) findAuthorized(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch role {
	case string(entity.RoleAdmin):
		return appointment, nil
	case string(entity.RoleDoctor):
		if appointment.DoctorID == userID {
			return appointment, nil
		}
	case string(entity.RolePatient):
		if appointment.PatientID != nil && *appointment.PatientID == userID {
			return appointment, nil
		}
	}
	return nil, ErrNotParticipant
}

func (u *appointmentUsecase) sendBookingConfirmation(appointment *entity.Appointment, email, name string) {
	if email == "" {
		return
	}
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment on %s at %s has been booked and is pending confirmation.\n",
		name, appointment.AppointmentDate.Format("2006-01-02"), appointment.AppointmentTime,
	)
	if err := u.mailService.Send([]string{email}, "Appointment Booked", body); err != nil {
		u.log.Warnf("Failed to send booking confirmation to %s: %+v", email, err)
	}
}

// notifyCancellation emails the counterparty of whoever cancelled.
func (u *appointmentUsecase) notifyCancellation(ctx context.Context, appointment *entity.Appointment, cancelledBy string) {
	var email, name string

	if cancelledBy == string(entity.RolePatient) || cancelledBy == string(entity.RoleAdmin) {
		doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), appointment.DoctorID)
		if err != nil || doctor == nil {
			return
		}
		email, name = doctor.Email, doctor.DisplayName()
	} else {
		if appointment.IsGuestBooking {
			email, name = appointment.GuestEmail, appointment.GuestName
		} else if appointment.PatientID != nil {
			patient, err := u.userRepo.FindByID(u.db.WithContext(ctx), *appointment.PatientID)
			if err != nil || patient == nil {
				return
			}
			email, name = patient.Email, patient.DisplayName()
		}
	}
	if email == "" {
		return
	}

	body := fmt.Sprintf(
		"Dear %s,\n\nThe appointment on %s at %s has been cancelled.\n",
		name, appointment.AppointmentDate.Format("2006-01-02"), appointment.AppointmentTime,
	)
	if err := u.mailService.Send([]string{email}, "Appointment Cancelled", body); err != nil {
		u.log.Warnf("Failed to send cancellation notice to %s: %+v", email, err)
	}
}

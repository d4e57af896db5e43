package usecase

import (
	"context"
	"errors"
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
	ErrSlotNotFound      = errors.New("time slot not found")
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
	ErrInvalidWeekday    = errors.New("invalid weekday name")
	ErrInvalidLeaveRange = errors.New("leave start date must not be after end date")
)

const defaultSlotDuration = 30

type AvailabilityUsecase interface {
	GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error)
	UpsertAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.UpsertAvailabilityRequest) (*dto.AvailabilityResponse, error)
	AddSlot(ctx context.Context, doctorID uuid.UUID, req *dto.TimeSlotRequest) (*dto.AvailabilityResponse, error)
	DeleteSlot(ctx context.Context, doctorID, slotID uuid.UUID) error
	SetLeave(ctx context.Context, doctorID uuid.UUID, req *dto.SetLeaveRequest) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	availabilityRepo repository.AvailabilityRepository
	auditService     service.AuditService
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	availabilityRepo repository.AvailabilityRepository,
	auditService service.AuditService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:               db,
		log:              log,
		availabilityRepo: availabilityRepo,
		auditService:     auditService,
	}
}

// GetAvailability returns the doctor's availability, creating an empty row
// on first access so every doctor always has one.
func (u *availabilityUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error) {
	availability, err := u.findOrCreate(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return converter.AvailabilityToResponse(availability), nil
}

func (u *availabilityUsecase) UpsertAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.UpsertAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	availability, err := u.findOrCreate(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	slots := make([]entity.TimeSlot, len(req.Slots))
	for i, slotReq := range req.Slots {
		slot, err := buildTimeSlot(availability.ID, &slotReq)
		if err != nil {
			return nil, err
		}
		slots[i] = *slot
	}

	if req.IsOnLeave != nil {
		if err := applyLeave(availability, *req.IsOnLeave, req.LeaveStartDate, req.LeaveEndDate, req.LeaveReason); err != nil {
			return nil, err
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.availabilityRepo.ReplaceSlots(tx, availability.ID, slots); err != nil {
		u.log.Warnf("Failed to replace time slots: %+v", err)
		return nil, err
	}
	if err := u.availabilityRepo.Update(tx, availability); err != nil {
		u.log.Warnf("Failed to update availability: %+v", err)
		return nil, err
	}
	if err := u.auditService.Record(tx, &doctorID, entity.AuditActionAvailabilityUpdate, entity.JSON{
		"slot_count": len(slots),
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	availability.Slots = slots
	return converter.AvailabilityToResponse(availability), nil
}

func (u *availabilityUsecase) AddSlot(ctx context.Context, doctorID uuid.UUID, req *dto.TimeSlotRequest) (*dto.AvailabilityResponse, error) {
	availability, err := u.findOrCreate(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	slot, err := buildTimeSlot(availability.ID, req)
	if err != nil {
		return nil, err
	}

	if err := u.availabilityRepo.AddSlot(u.db.WithContext(ctx), slot); err != nil {
		u.log.Warnf("Failed to add time slot: %+v", err)
		return nil, err
	}

	availability.Slots = append(availability.Slots, *slot)
	return converter.AvailabilityToResponse(availability), nil
}

func (u *availabilityUsecase) DeleteSlot(ctx context.Context, doctorID, slotID uuid.UUID) error {
	availability, err := u.availabilityRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find availability: %+v", err)
		return err
	}
	if availability == nil {
		return ErrSlotNotFound
	}

	affected, err := u.availabilityRepo.DeleteSlot(u.db.WithContext(ctx), availability.ID, slotID)
	if err != nil {
		u.log.Warnf("Failed to delete time slot: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func (u *availabilityUsecase) SetLeave(ctx context.Context, doctorID uuid.UUID, req *dto.SetLeaveRequest) (*dto.AvailabilityResponse, error) {
	availability, err := u.findOrCreate(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if err := applyLeave(availability, req.IsOnLeave, req.LeaveStartDate, req.LeaveEndDate, req.LeaveReason); err != nil {
		return nil, err
	}

	if err := u.availabilityRepo.Update(u.db.WithContext(ctx), availability); err != nil {
		u.log.Warnf("Failed to update leave: %+v", err)
		return nil, err
	}

	return converter.AvailabilityToResponse(availability), nil
}

func (u *availabilityUsecase) findOrCreate(ctx context.Context, doctorID uuid.UUID) (*entity.DoctorAvailability, error) {
	availability, err := u.availabilityRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find availability: %+v", err)
		return nil, err
	}
	if availability != nil {
		return availability, nil
	}

	availability = &entity.DoctorAvailability{DoctorID: doctorID}
	if err := u.availabilityRepo.Create(u.db.WithContext(ctx), availability); err != nil {
		// A concurrent first access may have created the row already.
		if isDuplicateKeyError(err, "doctor_id") {
			return u.availabilityRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
		}
		u.log.Warnf("Failed to create availability: %+v", err)
		return nil, err
	}
	return availability, nil
}

// buildTimeSlot validates a slot request and converts it to an entity.
func buildTimeSlot(availabilityID uuid.UUID, req *dto.TimeSlotRequest) (*entity.TimeSlot, error) {
	if !entity.IsValidWeekday(req.Day) {
		return nil, ErrInvalidWeekday
	}

	start, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	end, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}

	slot := &entity.TimeSlot{
		AvailabilityID: availabilityID,
		Day:            req.Day,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		IsAvailable:    true,
		SlotDuration:   defaultSlotDuration,
	}
	if req.IsAvailable != nil {
		slot.IsAvailable = *req.IsAvailable
	}
	if req.SlotDuration > 0 {
		slot.SlotDuration = req.SlotDuration
	}
	return slot, nil
}

// applyLeave mutates the leave fields on the aggregate. Clearing the leave
// flag also clears the period and reason.
func applyLeave(availability *entity.DoctorAvailability, isOnLeave bool, startDate, endDate, reason string) error {
	if !isOnLeave {
		availability.IsOnLeave = false
		availability.LeaveStartDate = nil
		availability.LeaveEndDate = nil
		availability.LeaveReason = ""
		return nil
	}

	availability.IsOnLeave = true
	availability.LeaveReason = reason

	if startDate != "" {
		start, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return ErrInvalidDateFormat
		}
		availability.LeaveStartDate = &start
	}
	if endDate != "" {
		end, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return ErrInvalidDateFormat
		}
		availability.LeaveEndDate = &end
	}
	if availability.LeaveStartDate != nil && availability.LeaveEndDate != nil &&
		availability.LeaveStartDate.After(*availability.LeaveEndDate) {
		return ErrInvalidLeaveRange
	}
	return nil
}

package usecase

import (
	"context"
	"errors"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/converter"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/repository"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("medical record not found")

type MedicalRecordUsecase interface {
	Create(ctx context.Context, doctorID uuid.UUID, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	Get(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID) (*dto.MedicalRecordResponse, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.MedicalRecordListResponse, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.MedicalRecordListResponse, error)
	Update(ctx context.Context, doctorID, id uuid.UUID, req *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	Delete(ctx context.Context, doctorID, id uuid.UUID) error
}

type medicalRecordUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	recordRepo      repository.MedicalRecordRepository
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	auditService    service.AuditService
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.MedicalRecordRepository,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:              db,
		log:             log,
		recordRepo:      recordRepo,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		auditService:    auditService,
	}
}

func (u *medicalRecordUsecase) Create(ctx context.Context, doctorID uuid.UUID, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, ErrPatientNotFound
	}

	patient, err := u.userRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil || !patient.IsPatient() {
		return nil, ErrPatientNotFound
	}

	shared, err := u.appointmentRepo.ExistsBetween(u.db.WithContext(ctx), doctorID, patientID)
	if err != nil {
		u.log.Warnf("Failed to check shared appointment: %+v", err)
		return nil, err
	}
	if !shared {
		return nil, ErrNoSharedAppointment
	}

	record := &entity.MedicalRecord{
		DoctorID:    doctorID,
		PatientID:   patientID,
		RecordType:  req.RecordType,
		Title:       req.Title,
		Description: req.Description,
		Diagnosis:   req.Diagnosis,
		Treatment:   req.Treatment,
		Attachments: req.Attachments,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.recordRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, err
	}
	if err := u.auditService.Record(tx, &doctorID, entity.AuditActionRecordCreate, entity.JSON{
		"record_id":  record.ID.String(),
		"patient_id": patientID.String(),
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUsecase) Get(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID) (*dto.MedicalRecordResponse, error) {
	record, err := u.findAuthorizedRecord(ctx, userID, role, id)
	if err != nil {
		return nil, err
	}
	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUsecase) ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.MedicalRecordListResponse, error) {
	records, err := u.recordRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list medical records: %+v", err)
		return nil, err
	}
	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

func (u *medicalRecordUsecase) ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.MedicalRecordListResponse, error) {
	records, err := u.recordRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list medical records: %+v", err)
		return nil, err
	}
	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

func (u *medicalRecordUsecase) Update(ctx context.Context, doctorID, id uuid.UUID, req *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medical record: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}
	if record.DoctorID != doctorID {
		return nil, ErrNotParticipant
	}

	if req.RecordType != "" {
		record.RecordType = req.RecordType
	}
	if req.Title != "" {
		record.Title = req.Title
	}
	if req.Description != "" {
		record.Description = req.Description
	}
	if req.Diagnosis != "" {
		record.Diagnosis = req.Diagnosis
	}
	if req.Treatment != "" {
		record.Treatment = req.Treatment
	}
	if req.Attachments != nil {
		record.Attachments = req.Attachments
	}

	if err := u.recordRepo.Update(u.db.WithContext(ctx), record); err != nil {
		u.log.Warnf("Failed to update medical record: %+v", err)
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUsecase) Delete(ctx context.Context, doctorID, id uuid.UUID) error {
	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medical record: %+v", err)
		return err
	}
	if record == nil {
		return ErrRecordNotFound
	}
	if record.DoctorID != doctorID {
		return ErrNotParticipant
	}

	if err := u.recordRepo.Delete(u.db.WithContext(ctx), record.ID); err != nil {
		u.log.Warnf("Failed to delete medical record: %+v", err)
		return err
	}
	return nil
}

func (u *medicalRecordUsecase) findAuthorizedRecord(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID) (*entity.MedicalRecord, error) {
	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medical record: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	switch role {
	case string(entity.RoleAdmin):
		return record, nil
	case string(entity.RoleDoctor):
		if record.DoctorID == userID {
			return record, nil
		}
	case string(entity.RolePatient):
		if record.PatientID == userID {
			return record, nil
		}
	}
	return nil, ErrNotParticipant
}

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
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrNoSharedAppointment  = errors.New("no appointment exists with this patient")
	ErrRefillNotAllowed     = errors.New("prescription cannot be refilled")
)

type PrescriptionUsecase interface {
	Create(ctx context.Context, doctorID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	Get(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID) (*dto.PrescriptionResponse, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.PrescriptionListResponse, error)
	Update(ctx context.Context, doctorID, id uuid.UUID, req *dto.UpdatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	RequestRefill(ctx context.Context, patientID, id uuid.UUID) (*dto.PrescriptionResponse, error)
	Delete(ctx context.Context, doctorID, id uuid.UUID) error
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	appointmentRepo  repository.AppointmentRepository
	userRepo         repository.UserRepository
	auditService     service.AuditService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		appointmentRepo:  appointmentRepo,
		userRepo:         userRepo,
		auditService:     auditService,
	}
}

func (u *prescriptionUsecase) Create(ctx context.Context, doctorID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
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

	// Prescribing requires an existing care relationship.
	shared, err := u.appointmentRepo.ExistsBetween(u.db.WithContext(ctx), doctorID, patientID)
	if err != nil {
		u.log.Warnf("Failed to check shared appointment: %+v", err)
		return nil, err
	}
	if !shared {
		return nil, ErrNoSharedAppointment
	}

	prescription := &entity.Prescription{
		DoctorID:     doctorID,
		PatientID:    patientID,
		Diagnosis:    req.Diagnosis,
		Medications:  medicationsFromRequests(req.Medications),
		Instructions: req.Instructions,
		Notes:        req.Notes,
		Status:       entity.PrescriptionStatusActive,
		IsRefillable: req.IsRefillable,
		MaxRefills:   req.MaxRefills,
	}

	if req.AppointmentID != "" {
		appointmentID, err := uuid.Parse(req.AppointmentID)
		if err != nil {
			return nil, ErrAppointmentNotFound
		}
		appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
		if err != nil {
			u.log.Warnf("Failed to find appointment: %+v", err)
			return nil, err
		}
		if appointment == nil || appointment.DoctorID != doctorID {
			return nil, ErrAppointmentNotFound
		}
		prescription.AppointmentID = &appointmentID
	}

	if req.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		prescription.ExpiryDate = &expiry
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.prescriptionRepo.Create(tx, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}
	if err := u.auditService.Record(tx, &doctorID, entity.AuditActionPrescriptionCreate, entity.JSON{
		"prescription_id": prescription.ID.String(),
		"patient_id":      patientID.String(),
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) Get(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	prescription, err := u.findAuthorizedPrescription(ctx, userID, role, id)
	if err != nil {
		return nil, err
	}
	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list prescriptions: %+v", err)
		return nil, err
	}
	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

func (u *prescriptionUsecase) ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.PrescriptionListResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list prescriptions: %+v", err)
		return nil, err
	}
	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

func (u *prescriptionUsecase) Update(ctx context.Context, doctorID, id uuid.UUID, req *dto.UpdatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	if prescription.DoctorID != doctorID {
		return nil, ErrNotParticipant
	}

	if req.Diagnosis != "" {
		prescription.Diagnosis = req.Diagnosis
	}
	if len(req.Medications) > 0 {
		prescription.Medications = medicationsFromRequests(req.Medications)
	}
	if req.Instructions != "" {
		prescription.Instructions = req.Instructions
	}
	if req.Notes != "" {
		prescription.Notes = req.Notes
	}
	if req.Status != "" {
		prescription.Status = entity.PrescriptionStatus(req.Status)
	}

	if err := u.prescriptionRepo.Update(u.db.WithContext(ctx), prescription); err != nil {
		u.log.Warnf("Failed to update prescription: %+v", err)
		return nil, err
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) Delete(ctx context.Context, doctorID, id uuid.UUID) error {
	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return err
	}
	if prescription == nil {
		return ErrPrescriptionNotFound
	}
	if prescription.DoctorID != doctorID {
		return ErrNotParticipant
	}

	if err := u.prescriptionRepo.Delete(u.db.WithContext(ctx), prescription.ID); err != nil {
		u.log.Warnf("Failed to delete prescription: %+v", err)
		return err
	}
	return nil
}

func (u *prescriptionUsecase) RequestRefill(ctx context.Context, patientID, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	if prescription.PatientID != patientID {
		return nil, ErrNotParticipant
	}
	if !prescription.CanRefill() {
		return nil, ErrRefillNotAllowed
	}

	prescription.RefillCount++
	if err := u.prescriptionRepo.Update(u.db.WithContext(ctx), prescription); err != nil {
		u.log.Warnf("Failed to record refill: %+v", err)
		return nil, err
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) findAuthorizedPrescription(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID) (*entity.Prescription, error) {
	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	switch role {
	case string(entity.RoleAdmin):
		return prescription, nil
	case string(entity.RoleDoctor):
		if prescription.DoctorID == userID {
			return prescription, nil
		}
	case string(entity.RolePatient):
		if prescription.PatientID == userID {
			return prescription, nil
		}
	}
	return nil, ErrNotParticipant
}

func medicationsFromRequests(requests []dto.MedicationRequest) entity.MedicationList {
	medications := make(entity.MedicationList, len(requests))
	for i, req := range requests {
		medications[i] = entity.Medication{
			Name:         req.Name,
			Dosage:       req.Dosage,
			Frequency:    req.Frequency,
			Duration:     req.Duration,
			Instructions: req.Instructions,
		}
	}
	return medications
}

package usecase

import (
	"context"
	"errors"
	"fmt"

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
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrDoctorNotPending  = errors.New("doctor is not awaiting approval")
	ErrCannotDeleteAdmin = errors.New("admin accounts cannot be deleted")
)

type AdminUsecase interface {
	ListPendingDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	ApproveDoctor(ctx context.Context, adminID, doctorID uuid.UUID) (*dto.UserResponse, error)
	RejectDoctor(ctx context.Context, adminID, doctorID uuid.UUID, reason string) error
	DeleteUser(ctx context.Context, adminID, userID uuid.UUID) error
}

type adminUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	mailService  *service.MailService
	auditService service.AuditService
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	mailService *service.MailService,
	auditService service.AuditService,
) AdminUsecase {
	return &adminUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		mailService:  mailService,
		auditService: auditService,
	}
}

func (u *adminUsecase) ListPendingDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.userRepo.FindPendingDoctors(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list pending doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.UsersToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *adminUsecase) ApproveDoctor(ctx context.Context, adminID, doctorID uuid.UUID) (*dto.UserResponse, error) {
	doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}
	if doctor.IsApproved || !doctor.IsVerified {
		return nil, ErrDoctorNotPending
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.SetApproved(tx, doctor.ID); err != nil {
		u.log.Warnf("Failed to approve doctor: %+v", err)
		return nil, err
	}
	if err := u.auditService.Record(tx, &adminID, entity.AuditActionDoctorApprove, entity.JSON{
		"doctor_id":    doctor.ID.String(),
		"doctor_email": doctor.Email,
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	doctor.IsApproved = true

	body := fmt.Sprintf("Dear Dr. %s,\n\nYour account has been approved. You can now log in and start accepting appointments.\n", doctor.DisplayName())
	if err := u.mailService.Send([]string{doctor.Email}, "Account Approved", body); err != nil {
		u.log.Warnf("Failed to send approval email to %s: %+v", doctor.Email, err)
	}

	return converter.UserToResponse(doctor), nil
}

// RejectDoctor removes the doctor's registration so the email can be used
// again. The rejection reason goes to the doctor by email and into the audit
// trail.
func (u *adminUsecase) RejectDoctor(ctx context.Context, adminID, doctorID uuid.UUID, reason string) error {
	doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return ErrDoctorNotFound
	}
	if doctor.IsApproved {
		return ErrDoctorNotPending
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.Delete(tx, doctor.ID); err != nil {
		u.log.Warnf("Failed to delete rejected doctor: %+v", err)
		return err
	}
	if err := u.auditService.Record(tx, &adminID, entity.AuditActionDoctorReject, entity.JSON{
		"doctor_id":    doctor.ID.String(),
		"doctor_email": doctor.Email,
		"reason":       reason,
	}); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	body := fmt.Sprintf("Dear Dr. %s,\n\nYour registration was not approved.", doctor.DisplayName())
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nYou may register again with corrected credentials.\n"
	if err := u.mailService.Send([]string{doctor.Email}, "Registration Rejected", body); err != nil {
		u.log.Warnf("Failed to send rejection email to %s: %+v", doctor.Email, err)
	}

	return nil
}

func (u *adminUsecase) DeleteUser(ctx context.Context, adminID, userID uuid.UUID) error {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Role == entity.RoleAdmin {
		return ErrCannotDeleteAdmin
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.Delete(tx, user.ID); err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return err
	}
	if err := u.auditService.Record(tx, &adminID, entity.AuditActionUserDelete, entity.JSON{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    string(user.Role),
	}); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

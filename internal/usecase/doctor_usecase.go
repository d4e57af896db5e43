package usecase

import (
	"context"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/converter"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DoctorUsecase serves the public doctor directory used by the booking flow.
type DoctorUsecase interface {
	ListApprovedDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.UserResponse, error)
}

type doctorUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	userRepo repository.UserRepository
}

func NewDoctorUsecase(db *gorm.DB, log *logrus.Logger, userRepo repository.UserRepository) DoctorUsecase {
	return &doctorUsecase{
		db:       db,
		log:      log,
		userRepo: userRepo,
	}
}

func (u *doctorUsecase) ListApprovedDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.userRepo.FindApprovedDoctors(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list approved doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.UsersToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.UserResponse, error) {
	doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() || !doctor.IsApproved {
		return nil, ErrDoctorNotFound
	}

	return converter.UserToResponse(doctor), nil
}

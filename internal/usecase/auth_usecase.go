package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/config"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/converter"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/repository"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/service"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrTokenRevoked           = errors.New("token has been revoked")
	ErrUserNotFound           = errors.New("user not found")
	ErrAccountNotVerified     = errors.New("account is not verified")
	ErrPendingApproval        = errors.New("account is pending admin approval")
	ErrAlreadyVerified        = errors.New("account is already verified")
	ErrInvalidDateFormat      = errors.New("invalid date format, use YYYY-MM-DD")
	ErrMissingDoctorFields    = errors.New("license number, specialization, hospital and credential documents are required for doctors")
	ErrMissingPatientFields   = errors.New("blood group, medical history and at least one medical file are required for patients")
	ErrInvalidConsultationFee = errors.New("invalid consultation fee")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.VerifyOTPResponse, error)
	ResendOTP(ctx context.Context, req *dto.ResendOTPRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	Logout(ctx context.Context, accessTokenID, refreshTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	CheckEmail(ctx context.Context, email string) (*dto.CheckEmailResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
	otpService   *service.OTPService
	mailService  *service.MailService
	auditService service.AuditService
	adminConfig  config.AdminConfig
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	otpService *service.OTPService,
	mailService *service.MailService,
	auditService service.AuditService,
	adminConfig config.AdminConfig,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		jwtService:   jwtService,
		redisClient:  redisClient,
		otpService:   otpService,
		mailService:  mailService,
		auditService: auditService,
		adminConfig:  adminConfig,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Parse date of birth
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Role:             entity.UserRole(req.Role),
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		DateOfBirth:      dob,
		Gender:           req.Gender,
		Email:            strings.ToLower(req.Email),
		Phone:            req.Phone,
		EmergencyContact: req.EmergencyContact,
		Languages:        req.Languages,
		Password:         string(hashedPassword),
	}

	if err := applyRoleFields(user, req); err != nil {
		return nil, err
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &user.ID, entity.AuditActionUserRegister, entity.JSON{
		"email": user.Email,
		"role":  string(user.Role),
	}); err != nil {
		return nil, err
	}

	// Deliver the OTP before committing so a failed delivery aborts the
	// registration instead of stranding an unverifiable account.
	if err := u.otpService.Issue(ctx, user.Email); err != nil {
		u.log.Warnf("Failed to issue OTP for %s: %+v", user.Email, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.VerifyOTPResponse, error) {
	email := strings.ToLower(req.Email)

	if err := u.otpService.Verify(ctx, email, req.OTP); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !user.IsVerified {
		tx := u.db.WithContext(ctx).Begin()
		defer tx.Rollback()

		if err := u.userRepo.SetVerified(tx, user.ID); err != nil {
			u.log.Warnf("Failed to mark user verified: %+v", err)
			return nil, err
		}
		if err := u.auditService.Record(tx, &user.ID, entity.AuditActionUserVerify, entity.JSON{
			"email": user.Email,
		}); err != nil {
			return nil, err
		}
		if err := tx.Commit().Error; err != nil {
			u.log.Warnf("Failed commit transaction: %+v", err)
			return nil, err
		}
		user.IsVerified = true
	}

	// A verified doctor still waits for approval. Notify the admins with the
	// submitted credential documents and return no tokens yet.
	if user.IsDoctor() && !user.IsApproved {
		u.notifyAdminsOfPendingDoctor(user)
		return &dto.VerifyOTPResponse{Status: dto.VerificationStatusPendingApproval}, nil
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.VerifyOTPResponse{
		Status: dto.VerificationStatusVerified,
		Tokens: tokens,
	}, nil
}

func (u *authUsecase) ResendOTP(ctx context.Context, req *dto.ResendOTPRequest) error {
	email := strings.ToLower(req.Email)

	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}

	return u.otpService.IssueWithCooldown(ctx, email)
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(req.Email)

	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		// Push a fresh code so the user can complete verification right away.
		// The cooldown keeps repeated login attempts from spamming the inbox.
		if err := u.otpService.IssueWithCooldown(ctx, email); err != nil && !errors.Is(err, service.ErrResendCooldown) {
			u.log.Warnf("Failed to resend OTP during login for %s: %+v", email, err)
		}
		return nil, ErrAccountNotVerified
	}

	if user.IsDoctor() && !user.IsApproved {
		return nil, ErrPendingApproval
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.Record(u.db.WithContext(ctx), &user.ID, entity.AuditActionUserLogin, entity.JSON{
		"email": user.Email,
	}); err != nil {
		u.log.Warnf("Failed to audit login: %+v", err)
	}

	return tokens, nil
}

func (u *authUsecase) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	email := strings.ToLower(req.Email)

	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	if user == nil {
		// Do not reveal whether the address is registered.
		return nil
	}

	return u.otpService.IssueWithCooldown(ctx, email)
}

func (u *authUsecase) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	email := strings.ToLower(req.Email)

	if err := u.otpService.Verify(ctx, email, req.OTP); err != nil {
		return err
	}

	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.UpdatePassword(tx, user.ID, string(hashedPassword)); err != nil {
		u.log.Warnf("Failed to update password: %+v", err)
		return err
	}
	if err := u.auditService.Record(tx, &user.ID, entity.AuditActionPasswordReset, entity.JSON{
		"email": user.Email,
	}); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	// Existing sessions must not survive a password reset.
	return u.revokeAllUserTokens(ctx, user.ID)
}

func (u *authUsecase) Logout(ctx context.Context, accessTokenID, refreshTokenID string) error {
	accessPattern := fmt.Sprintf("access_token:*:%s", accessTokenID)
	refreshPattern := fmt.Sprintf("refresh_token:*:%s", refreshTokenID)

	for _, pattern := range []string{accessPattern, refreshPattern} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to get token keys: %+v", err)
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete tokens: %+v", err)
				return err
			}
		}
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Rotate: the old refresh token is single use.
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) CheckEmail(ctx context.Context, email string) (*dto.CheckEmailResponse, error) {
	exists, err := u.userRepo.ExistsByEmail(u.db.WithContext(ctx), strings.ToLower(email))
	if err != nil {
		u.log.Warnf("Failed to check email existence: %+v", err)
		return nil, err
	}
	return &dto.CheckEmailResponse{Exists: exists}, nil
}

// issueTokens generates an access/refresh token pair and registers both token
// IDs in Redis so they can be revoked individually.
func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", user.ID.String(), accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", user.ID.String(), refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}
	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// revokeAllUserTokens drops every registered token for the user.
func (u *authUsecase) revokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	for _, pattern := range []string{
		fmt.Sprintf("access_token:%s:*", userID.String()),
		fmt.Sprintf("refresh_token:%s:*", userID.String()),
	} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to get token keys: %+v", err)
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete tokens: %+v", err)
				return err
			}
		}
	}
	return nil
}

// notifyAdminsOfPendingDoctor emails the admin list with the doctor's
// credential documents attached. Delivery failures are logged only; the
// verification itself already succeeded.
func (u *authUsecase) notifyAdminsOfPendingDoctor(user *entity.User) {
	if len(u.adminConfig.Emails) == 0 {
		return
	}

	body := fmt.Sprintf(
		"Doctor %s (%s) has verified their email and is awaiting approval.\n\nLicense Number: %s\nSpecialization: %s\nHospital: %s\n",
		user.DisplayName(), user.Email, user.LicenseNumber, user.Specialization, user.HospitalName,
	)

	if err := u.mailService.Send(u.adminConfig.Emails, "New Doctor Pending Approval", body, user.CredentialDocuments()...); err != nil {
		u.log.Warnf("Failed to notify admins about pending doctor %s: %+v", user.Email, err)
	}
}

// generateUserCode builds a short human-readable account code.
// applyRoleFields validates and copies the role-specific registration
// fields. Doctors must submit their license, specialization, hospital and
// all three credential documents; patients must submit blood group, medical
// history and at least one medical file. Approval defaults by role: doctors
// wait for an admin, patients only need OTP verification.
func applyRoleFields(user *entity.User, req *dto.RegisterRequest) error {
	switch user.Role {
	case entity.RoleDoctor:
		if req.LicenseNumber == "" || req.Specialization == "" || req.HospitalName == "" ||
			req.LicenseCertificate == "" || req.BoardCertificate == "" || req.GovernmentID == "" {
			return ErrMissingDoctorFields
		}
		user.LicenseNumber = req.LicenseNumber
		user.Specialization = req.Specialization
		user.HospitalName = req.HospitalName
		user.LicenseCertificate = req.LicenseCertificate
		user.BoardCertificate = req.BoardCertificate
		user.GovernmentID = req.GovernmentID
		user.DoctorCode = generateUserCode("DOC")
		user.IsApproved = false
		if req.ConsultationFee != "" {
			fee, err := decimal.NewFromString(req.ConsultationFee)
			if err != nil || fee.IsNegative() {
				return ErrInvalidConsultationFee
			}
			user.ConsultationFee = fee
		}
	case entity.RolePatient:
		if req.BloodGroup == "" || req.MedicalHistory == "" || len(req.MedicalFiles) == 0 {
			return ErrMissingPatientFields
		}
		user.BloodGroup = req.BloodGroup
		user.MedicalHistory = req.MedicalHistory
		user.MedicalFiles = req.MedicalFiles
		user.GovernmentIDs = req.GovernmentIDs
		user.PatientCode = generateUserCode("PAT")
		user.IsApproved = true
	}
	return nil
}

func generateUserCode(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.New().String()[:8]))
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

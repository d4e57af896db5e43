package dto

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest carries the role-common and role-specific registration
// fields. Document fields hold storage paths produced by the upload layer.
type RegisterRequest struct {
	Role             string   `json:"role" validate:"required,oneof=doctor patient"`
	FirstName        string   `json:"first_name" validate:"required,max=100"`
	LastName         string   `json:"last_name" validate:"required,max=100"`
	DateOfBirth      string   `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender           string   `json:"gender" validate:"required,oneof=Male Female Other"`
	Email            string   `json:"email" validate:"required,email,max=255"`
	Phone            string   `json:"phone" validate:"required,min=10,max=15,numeric"`
	EmergencyContact string   `json:"emergency_contact" validate:"required,min=10,max=15,numeric"`
	Languages        []string `json:"languages" validate:"required,min=1"`
	Password         string   `json:"password" validate:"required,min=8,max=72"`

	// Patient-specific
	BloodGroup     string   `json:"blood_group,omitempty" validate:"required_if=Role patient,omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	MedicalHistory string   `json:"medical_history,omitempty" validate:"required_if=Role patient"`
	MedicalFiles   []string `json:"medical_files,omitempty" validate:"required_if=Role patient,omitempty,min=1"`
	GovernmentIDs  []string `json:"government_ids,omitempty"`

	// Doctor-specific
	LicenseNumber      string `json:"license_number,omitempty" validate:"required_if=Role doctor"`
	Specialization     string `json:"specialization,omitempty" validate:"required_if=Role doctor"`
	HospitalName       string `json:"hospital_name,omitempty" validate:"required_if=Role doctor"`
	LicenseCertificate string `json:"license_certificate,omitempty" validate:"required_if=Role doctor"`
	BoardCertificate   string `json:"board_certificate,omitempty" validate:"required_if=Role doctor"`
	GovernmentID       string `json:"government_id,omitempty" validate:"required_if=Role doctor"`
	ConsultationFee    string `json:"consultation_fee,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Verification states returned by verify-otp
const (
	VerificationStatusVerified        = "verified"
	VerificationStatusPendingApproval = "pending_approval"
)

// VerifyOTPResponse carries tokens for patients and a pending_approval
// status (no tokens) for doctors.
type VerifyOTPResponse struct {
	Status string         `json:"status"`
	Tokens *TokenResponse `json:"tokens,omitempty"`
}

type UserResponse struct {
	ID               uuid.UUID `json:"id"`
	Role             string    `json:"role"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	DateOfBirth      string    `json:"date_of_birth"`
	Gender           string    `json:"gender"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	EmergencyContact string    `json:"emergency_contact"`
	Languages        []string  `json:"languages"`

	BloodGroup     string `json:"blood_group,omitempty"`
	MedicalHistory string `json:"medical_history,omitempty"`
	PatientCode    string `json:"patient_code,omitempty"`

	LicenseNumber   string `json:"license_number,omitempty"`
	Specialization  string `json:"specialization,omitempty"`
	HospitalName    string `json:"hospital_name,omitempty"`
	ConsultationFee string `json:"consultation_fee,omitempty"`
	DoctorCode      string `json:"doctor_code,omitempty"`

	IsVerified bool      `json:"is_verified"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CheckEmailResponse struct {
	Exists bool `json:"exists"`
}

type DoctorListResponse struct {
	Doctors []UserResponse `json:"doctors"`
	Total   int            `json:"total"`
}

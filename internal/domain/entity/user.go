package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// UserRole identifies the account type
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleDoctor  UserRole = "doctor"
	RolePatient UserRole = "patient"
)

// Gender constants
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// User represents the centralized account table for admins, doctors and patients.
// Role-specific columns are nullable and populated according to Role.
type User struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Role             UserRole       `gorm:"type:varchar(20);not null;index" json:"role"`
	FirstName        string         `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName         string         `gorm:"type:varchar(100);not null" json:"last_name"`
	DateOfBirth      time.Time      `gorm:"type:date;not null" json:"date_of_birth"`
	Gender           string         `gorm:"type:varchar(10);not null" json:"gender"`
	Email            string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone            string         `gorm:"type:varchar(20);not null" json:"phone"`
	EmergencyContact string         `gorm:"type:varchar(20);not null" json:"emergency_contact"`
	Languages        pq.StringArray `gorm:"type:text[]" json:"languages"`
	Password         string         `gorm:"type:text;not null" json:"-"`

	// Patient-specific fields
	BloodGroup     string         `gorm:"type:varchar(3)" json:"blood_group,omitempty"`
	MedicalHistory string         `gorm:"type:text" json:"medical_history,omitempty"`
	MedicalFiles   pq.StringArray `gorm:"type:text[]" json:"medical_files,omitempty"`
	GovernmentIDs  pq.StringArray `gorm:"type:text[]" json:"government_ids,omitempty"`
	PatientCode    string         `gorm:"type:varchar(30)" json:"patient_code,omitempty"`

	// Doctor-specific fields
	LicenseNumber      string          `gorm:"type:varchar(50)" json:"license_number,omitempty"`
	Specialization     string          `gorm:"type:varchar(100);index" json:"specialization,omitempty"`
	HospitalName       string          `gorm:"type:varchar(255)" json:"hospital_name,omitempty"`
	LicenseCertificate string          `gorm:"type:text" json:"license_certificate,omitempty"`
	BoardCertificate   string          `gorm:"type:text" json:"board_certificate,omitempty"`
	GovernmentID       string          `gorm:"type:text" json:"government_id,omitempty"`
	ConsultationFee    decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"consultation_fee,omitempty"`
	DoctorCode         string          `gorm:"type:varchar(30)" json:"doctor_code,omitempty"`

	// Verification and approval state.
	// IsVerified flips after OTP verification; IsApproved defaults true for
	// patients and stays false for doctors until an admin approves.
	IsVerified bool `gorm:"not null;default:false;index" json:"is_verified"`
	IsApproved bool `gorm:"not null;default:false;index" json:"is_approved"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}

func (u *User) IsPatient() bool {
	return u.Role == RolePatient
}

// DisplayName joins first and last name for notifications and responses.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// CredentialDocuments returns the paths of the documents a doctor submitted
// during registration, in the order admins review them.
func (u *User) CredentialDocuments() []string {
	var docs []string
	if u.LicenseCertificate != "" {
		docs = append(docs, u.LicenseCertificate)
	}
	if u.BoardCertificate != "" {
		docs = append(docs, u.BoardCertificate)
	}
	if u.GovernmentID != "" {
		docs = append(docs, u.GovernmentID)
	}
	return docs
}

package dto

import (
	"testing"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRegisterRequest(role string) RegisterRequest {
	return RegisterRequest{
		Role:             role,
		FirstName:        "Sarah",
		LastName:         "Connor",
		DateOfBirth:      "1985-04-12",
		Gender:           "Female",
		Email:            "sarah@example.com",
		Phone:            "0123456789",
		EmergencyContact: "0987654321",
		Languages:        []string{"English"},
		Password:         "correct-horse",
	}
}

func TestRegisterRequestPatientRequiresMedicalFields(t *testing.T) {
	v := validator.NewValidator()

	req := baseRegisterRequest("patient")
	err := v.Validate(req)
	require.Error(t, err)

	formatted := v.FormatValidationErrors(err)
	assert.Contains(t, formatted, "BloodGroup")
	assert.Contains(t, formatted, "MedicalHistory")
	assert.Contains(t, formatted, "MedicalFiles")

	req.BloodGroup = "O+"
	req.MedicalHistory = "None"
	req.MedicalFiles = []string{"uploads/history.pdf"}
	assert.NoError(t, v.Validate(req))
}

func TestRegisterRequestDoctorRequiresCredentials(t *testing.T) {
	v := validator.NewValidator()

	req := baseRegisterRequest("doctor")
	err := v.Validate(req)
	require.Error(t, err)

	formatted := v.FormatValidationErrors(err)
	assert.Contains(t, formatted, "LicenseNumber")
	assert.Contains(t, formatted, "Specialization")
	assert.Contains(t, formatted, "HospitalName")
	assert.Contains(t, formatted, "LicenseCertificate")
	assert.Contains(t, formatted, "BoardCertificate")
	assert.Contains(t, formatted, "GovernmentID")

	req.LicenseNumber = "MED-12345"
	req.Specialization = "Cardiology"
	req.HospitalName = "General Hospital"
	req.LicenseCertificate = "uploads/license.pdf"
	req.BoardCertificate = "uploads/board.pdf"
	req.GovernmentID = "uploads/id.pdf"
	assert.NoError(t, v.Validate(req))
}

func TestRegisterRequestDoctorSkipsPatientFields(t *testing.T) {
	v := validator.NewValidator()

	req := baseRegisterRequest("doctor")
	req.LicenseNumber = "MED-12345"
	req.Specialization = "Cardiology"
	req.HospitalName = "General Hospital"
	req.LicenseCertificate = "uploads/license.pdf"
	req.BoardCertificate = "uploads/board.pdf"
	req.GovernmentID = "uploads/id.pdf"

	// No blood group or medical files needed for doctors.
	assert.NoError(t, v.Validate(req))
}

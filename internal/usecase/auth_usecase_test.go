package usecase

import (
	"regexp"
	"testing"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doctorRegisterRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Role:               "doctor",
		LicenseNumber:      "MED-12345",
		Specialization:     "Cardiology",
		HospitalName:       "General Hospital",
		LicenseCertificate: "uploads/license.pdf",
		BoardCertificate:   "uploads/board.pdf",
		GovernmentID:       "uploads/id.pdf",
		ConsultationFee:    "150.50",
	}
}

func patientRegisterRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Role:           "patient",
		BloodGroup:     "O+",
		MedicalHistory: "None",
		MedicalFiles:   []string{"uploads/history.pdf"},
	}
}

func TestApplyRoleFieldsDoctor(t *testing.T) {
	user := &entity.User{Role: entity.RoleDoctor}

	err := applyRoleFields(user, doctorRegisterRequest())
	require.NoError(t, err)

	assert.False(t, user.IsApproved, "doctors wait for admin approval")
	assert.Equal(t, "MED-12345", user.LicenseNumber)
	assert.Equal(t, "General Hospital", user.HospitalName)
	assert.Equal(t, "150.5", user.ConsultationFee.String())
	assert.Regexp(t, `^DOC-`, user.DoctorCode)
}

func TestApplyRoleFieldsPatient(t *testing.T) {
	user := &entity.User{Role: entity.RolePatient}

	err := applyRoleFields(user, patientRegisterRequest())
	require.NoError(t, err)

	assert.True(t, user.IsApproved, "patients only need OTP verification")
	assert.Equal(t, "O+", user.BloodGroup)
	assert.Regexp(t, `^PAT-`, user.PatientCode)
}

func TestApplyRoleFieldsDoctorMissingFields(t *testing.T) {
	mutations := map[string]func(*dto.RegisterRequest){
		"license number":      func(r *dto.RegisterRequest) { r.LicenseNumber = "" },
		"specialization":      func(r *dto.RegisterRequest) { r.Specialization = "" },
		"hospital":            func(r *dto.RegisterRequest) { r.HospitalName = "" },
		"license certificate": func(r *dto.RegisterRequest) { r.LicenseCertificate = "" },
		"board certificate":   func(r *dto.RegisterRequest) { r.BoardCertificate = "" },
		"government id":       func(r *dto.RegisterRequest) { r.GovernmentID = "" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			req := doctorRegisterRequest()
			mutate(req)

			err := applyRoleFields(&entity.User{Role: entity.RoleDoctor}, req)
			assert.ErrorIs(t, err, ErrMissingDoctorFields)
		})
	}
}

func TestApplyRoleFieldsPatientMissingFields(t *testing.T) {
	mutations := map[string]func(*dto.RegisterRequest){
		"blood group":     func(r *dto.RegisterRequest) { r.BloodGroup = "" },
		"medical history": func(r *dto.RegisterRequest) { r.MedicalHistory = "" },
		"medical files":   func(r *dto.RegisterRequest) { r.MedicalFiles = nil },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			req := patientRegisterRequest()
			mutate(req)

			err := applyRoleFields(&entity.User{Role: entity.RolePatient}, req)
			assert.ErrorIs(t, err, ErrMissingPatientFields)
		})
	}
}

func TestApplyRoleFieldsInvalidFee(t *testing.T) {
	req := doctorRegisterRequest()
	req.ConsultationFee = "-10"

	err := applyRoleFields(&entity.User{Role: entity.RoleDoctor}, req)
	assert.ErrorIs(t, err, ErrInvalidConsultationFee)
}

func TestGenerateUserCode(t *testing.T) {
	codePattern := regexp.MustCompile(`^DOC-[0-9A-F]{8}$`)

	code := generateUserCode("DOC")
	assert.Regexp(t, codePattern, code)

	other := generateUserCode("DOC")
	assert.NotEqual(t, code, other)
}

func TestGenerateUserCodePrefixes(t *testing.T) {
	assert.Regexp(t, `^PAT-`, generateUserCode("PAT"))
	assert.Regexp(t, `^DOC-`, generateUserCode("DOC"))
}

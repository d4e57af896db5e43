package converter

import (
	"testing"
	"time"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserToResponseDoctor(t *testing.T) {
	user := &entity.User{
		ID:              uuid.New(),
		Role:            entity.RoleDoctor,
		FirstName:       "Sarah",
		LastName:        "Connor",
		DateOfBirth:     time.Date(1985, 4, 12, 0, 0, 0, 0, time.UTC),
		Email:           "sarah@example.com",
		LicenseNumber:   "MED-12345",
		Specialization:  "Cardiology",
		HospitalName:    "General Hospital",
		ConsultationFee: decimal.NewFromFloat(150.5),
		DoctorCode:      "DOC-1A2B3C4D",
		BloodGroup:      "O+",
		PatientCode:     "should not leak",
	}

	resp := UserToResponse(user)
	require.NotNil(t, resp)

	assert.Equal(t, "doctor", resp.Role)
	assert.Equal(t, "1985-04-12", resp.DateOfBirth)
	assert.Equal(t, "MED-12345", resp.LicenseNumber)
	assert.Equal(t, "Cardiology", resp.Specialization)
	assert.Equal(t, "150.50", resp.ConsultationFee)
	assert.Equal(t, "DOC-1A2B3C4D", resp.DoctorCode)

	// Patient columns stay hidden on doctor accounts.
	assert.Empty(t, resp.BloodGroup)
	assert.Empty(t, resp.PatientCode)
}

func TestUserToResponsePatient(t *testing.T) {
	user := &entity.User{
		ID:             uuid.New(),
		Role:           entity.RolePatient,
		FirstName:      "John",
		LastName:       "Doe",
		DateOfBirth:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		BloodGroup:     "A+",
		MedicalHistory: "None",
		PatientCode:    "PAT-9F8E7D6C",
		LicenseNumber:  "should not leak",
	}

	resp := UserToResponse(user)
	require.NotNil(t, resp)

	assert.Equal(t, "patient", resp.Role)
	assert.Equal(t, "A+", resp.BloodGroup)
	assert.Equal(t, "PAT-9F8E7D6C", resp.PatientCode)
	assert.Empty(t, resp.LicenseNumber)
	assert.Empty(t, resp.ConsultationFee)
}

func TestUserToResponseZeroFee(t *testing.T) {
	user := &entity.User{Role: entity.RoleDoctor}

	resp := UserToResponse(user)
	require.NotNil(t, resp)
	assert.Empty(t, resp.ConsultationFee)
}

func TestUserToResponseNil(t *testing.T) {
	assert.Nil(t, UserToResponse(nil))
}

func TestUsersToResponses(t *testing.T) {
	users := []entity.User{
		{Role: entity.RolePatient, FirstName: "A"},
		{Role: entity.RoleDoctor, FirstName: "B"},
	}

	responses := UsersToResponses(users)
	require.Len(t, responses, 2)
	assert.Equal(t, "A", responses[0].FirstName)
	assert.Equal(t, "B", responses[1].FirstName)
}

package converter

import (
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:               user.ID,
		Role:             string(user.Role),
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		DateOfBirth:      user.DateOfBirth.Format("2006-01-02"),
		Gender:           user.Gender,
		Email:            user.Email,
		Phone:            user.Phone,
		EmergencyContact: user.EmergencyContact,
		Languages:        user.Languages,
		IsVerified:       user.IsVerified,
		IsApproved:       user.IsApproved,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}

	switch user.Role {
	case entity.RolePatient:
		response.BloodGroup = user.BloodGroup
		response.MedicalHistory = user.MedicalHistory
		response.PatientCode = user.PatientCode
	case entity.RoleDoctor:
		response.LicenseNumber = user.LicenseNumber
		response.Specialization = user.Specialization
		response.HospitalName = user.HospitalName
		response.DoctorCode = user.DoctorCode
		if !user.ConsultationFee.IsZero() {
			response.ConsultationFee = user.ConsultationFee.StringFixed(2)
		}
	}

	return response
}

// UsersToResponses converts a slice of User entities to response DTOs
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i, user := range users {
		resp := UserToResponse(&user)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

package converter

import (
	"github.com/google/uuid"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"
)

// MedicalRecordToResponse converts a MedicalRecord entity to its response DTO
func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	response := &dto.MedicalRecordResponse{
		ID:          record.ID,
		DoctorID:    record.DoctorID,
		PatientID:   record.PatientID,
		RecordType:  record.RecordType,
		Title:       record.Title,
		Description: record.Description,
		Diagnosis:   record.Diagnosis,
		Treatment:   record.Treatment,
		Attachments: record.Attachments,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}

	if record.Doctor.ID != uuid.Nil {
		response.Doctor = UserToResponse(&record.Doctor)
	}
	if record.Patient.ID != uuid.Nil {
		response.Patient = UserToResponse(&record.Patient)
	}

	return response
}

// MedicalRecordsToResponses converts a slice of records
func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i, record := range records {
		resp := MedicalRecordToResponse(&record)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

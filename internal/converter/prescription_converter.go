package converter

import (
	"github.com/google/uuid"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"
)

// PrescriptionToResponse converts a Prescription entity to its response DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	response := &dto.PrescriptionResponse{
		ID:            prescription.ID,
		DoctorID:      prescription.DoctorID,
		PatientID:     prescription.PatientID,
		AppointmentID: prescription.AppointmentID,
		Diagnosis:     prescription.Diagnosis,
		Medications:   MedicationsToResponses(prescription.Medications),
		Instructions:  prescription.Instructions,
		Notes:         prescription.Notes,
		Status:        string(prescription.Status),
		IsRefillable:  prescription.IsRefillable,
		RefillCount:   prescription.RefillCount,
		MaxRefills:    prescription.MaxRefills,
		CreatedAt:     prescription.CreatedAt,
		UpdatedAt:     prescription.UpdatedAt,
	}

	if prescription.ExpiryDate != nil {
		response.ExpiryDate = prescription.ExpiryDate.Format("2006-01-02")
	}
	if prescription.Doctor.ID != uuid.Nil {
		response.Doctor = UserToResponse(&prescription.Doctor)
	}
	if prescription.Patient.ID != uuid.Nil {
		response.Patient = UserToResponse(&prescription.Patient)
	}

	return response
}

// MedicationsToResponses converts the embedded medication list
func MedicationsToResponses(medications entity.MedicationList) []dto.MedicationResponse {
	responses := make([]dto.MedicationResponse, len(medications))
	for i, medication := range medications {
		responses[i] = dto.MedicationResponse{
			Name:         medication.Name,
			Dosage:       medication.Dosage,
			Frequency:    medication.Frequency,
			Duration:     medication.Duration,
			Instructions: medication.Instructions,
		}
	}
	return responses
}

// PrescriptionsToResponses converts a slice of prescriptions
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i, prescription := range prescriptions {
		resp := PrescriptionToResponse(&prescription)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

package usecase

import (
	"testing"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestMedicationsFromRequests(t *testing.T) {
	requests := []dto.MedicationRequest{
		{Name: "Amoxicillin", Dosage: "500mg", Frequency: "3x daily", Duration: "7 days", Instructions: "After meals"},
		{Name: "Paracetamol", Dosage: "500mg", Frequency: "as needed"},
	}

	got := medicationsFromRequests(requests)

	assert.Equal(t, entity.MedicationList{
		{Name: "Amoxicillin", Dosage: "500mg", Frequency: "3x daily", Duration: "7 days", Instructions: "After meals"},
		{Name: "Paracetamol", Dosage: "500mg", Frequency: "as needed"},
	}, got)
}

func TestMedicationsFromRequestsEmpty(t *testing.T) {
	got := medicationsFromRequests(nil)
	assert.Empty(t, got)
}

package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrescriptionCanRefill(t *testing.T) {
	tests := []struct {
		name string
		p    Prescription
		want bool
	}{
		{
			name: "refillable with refills remaining",
			p:    Prescription{Status: PrescriptionStatusActive, IsRefillable: true, RefillCount: 1, MaxRefills: 3},
			want: true,
		},
		{
			name: "refills exhausted",
			p:    Prescription{Status: PrescriptionStatusActive, IsRefillable: true, RefillCount: 3, MaxRefills: 3},
			want: false,
		},
		{
			name: "not refillable",
			p:    Prescription{Status: PrescriptionStatusActive, IsRefillable: false, RefillCount: 0, MaxRefills: 3},
			want: false,
		},
		{
			name: "expired prescription",
			p:    Prescription{Status: PrescriptionStatusExpired, IsRefillable: true, RefillCount: 0, MaxRefills: 3},
			want: false,
		},
		{
			name: "revoked prescription",
			p:    Prescription{Status: PrescriptionStatusRevoked, IsRefillable: true, RefillCount: 0, MaxRefills: 3},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.CanRefill())
		})
	}
}

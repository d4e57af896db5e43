package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserDisplayName(t *testing.T) {
	u := &User{FirstName: "Sarah", LastName: "Connor"}
	assert.Equal(t, "Sarah Connor", u.DisplayName())
}

func TestUserRoleChecks(t *testing.T) {
	doctor := &User{Role: RoleDoctor}
	patient := &User{Role: RolePatient}
	admin := &User{Role: RoleAdmin}

	assert.True(t, doctor.IsDoctor())
	assert.False(t, doctor.IsPatient())
	assert.True(t, patient.IsPatient())
	assert.False(t, patient.IsDoctor())
	assert.False(t, admin.IsDoctor())
	assert.False(t, admin.IsPatient())
}

func TestUserCredentialDocuments(t *testing.T) {
	tests := []struct {
		name string
		user User
		want []string
	}{
		{
			name: "all documents",
			user: User{
				LicenseCertificate: "uploads/license.pdf",
				BoardCertificate:   "uploads/board.pdf",
				GovernmentID:       "uploads/id.pdf",
			},
			want: []string{"uploads/license.pdf", "uploads/board.pdf", "uploads/id.pdf"},
		},
		{
			name: "license only",
			user: User{LicenseCertificate: "uploads/license.pdf"},
			want: []string{"uploads/license.pdf"},
		},
		{
			name: "none",
			user: User{},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.CredentialDocuments())
		})
	}
}

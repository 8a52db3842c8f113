package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tafahna/practicum-portal/internal/app/models"
	"github.com/tafahna/practicum-portal/internal/pkg/apperrors"
)

func validInput() AdmissionInput {
	return AdmissionInput{
		FullName:    "أحمد محمد علي حسن",
		NationalID:  "29805241234567",
		PhoneNumber: "01012345678",
	}
}

func TestValidateIdentity(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AdmissionInput)
		wantErr error
	}{
		{
			name:   "valid input",
			mutate: func(*AdmissionInput) {},
		},
		{
			name:    "three name parts",
			mutate:  func(in *AdmissionInput) { in.FullName = "أحمد محمد علي" },
			wantErr: apperrors.ErrInvalidFullName,
		},
		{
			name:    "short national id",
			mutate:  func(in *AdmissionInput) { in.NationalID = "2980524123456" },
			wantErr: apperrors.ErrInvalidNationalID,
		},
		{
			name:    "national id with letters",
			mutate:  func(in *AdmissionInput) { in.NationalID = "29805241234a67" },
			wantErr: apperrors.ErrInvalidNationalID,
		},
		{
			name:    "short phone",
			mutate:  func(in *AdmissionInput) { in.PhoneNumber = "0101234567" },
			wantErr: apperrors.ErrInvalidPhone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := ValidateIdentity(in)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCheckAdmission(t *testing.T) {
	open := models.Institute{MaxCapacity: models.InstituteCapacity, CurrentCount: 3}
	full := models.Institute{MaxCapacity: models.InstituteCapacity, CurrentCount: models.InstituteCapacity}

	assert.NoError(t, CheckAdmission(open, false))
	assert.ErrorIs(t, CheckAdmission(open, true), apperrors.ErrAlreadyRegistered)
	assert.ErrorIs(t, CheckAdmission(full, false), apperrors.ErrInstituteFull)
	// A duplicate is reported before capacity.
	assert.ErrorIs(t, CheckAdmission(full, true), apperrors.ErrAlreadyRegistered)
}

func TestNewStudent(t *testing.T) {
	inst := models.Institute{
		ID:           "inst-1",
		Year:         models.YearFourth,
		DepartmentID: "english",
	}
	in := validInput()
	in.FullName = "  أحمد   محمد  علي   حسن "

	student := NewStudent(in, inst)
	require.NotEmpty(t, student.ID)
	assert.Equal(t, "أحمد محمد علي حسن", student.Name)
	assert.Equal(t, in.NationalID, student.NationalID)
	assert.Equal(t, in.PhoneNumber, student.PhoneNumber)
	assert.Equal(t, models.YearFourth, student.Year)
	assert.Equal(t, "english", student.DepartmentID)
	assert.Equal(t, "inst-1", student.InstituteID)
}

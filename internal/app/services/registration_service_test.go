package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tafahna/practicum-portal/internal/app/models"
	"github.com/tafahna/practicum-portal/internal/app/models/dto"
	"github.com/tafahna/practicum-portal/internal/pkg/apperrors"
)

func registerRequest(nationalID string) dto.RegisterStudentRequest {
	return dto.RegisterStudentRequest{
		FullName:    "أحمد محمد علي حسن",
		NationalID:  nationalID,
		PhoneNumber: "01012345678",
	}
}

func TestRegister(t *testing.T) {
	reg := newTestRegistry(t)
	seedInstitute(t, reg, "inst-1", models.YearThird, "arabic")
	service := NewRegistrationService(reg, zerolog.Nop())

	response, err := service.Register(context.Background(), "inst-1", registerRequest("29805241234567"))
	require.NoError(t, err)

	assert.NotEmpty(t, response.Student.ID)
	assert.Equal(t, models.YearThird, response.Student.Year)
	assert.Equal(t, "arabic", response.Student.DepartmentID)
	assert.Equal(t, 1, response.Institute.CurrentCount)
}

func TestRegister_InvalidIdentity(t *testing.T) {
	reg := newTestRegistry(t)
	seedInstitute(t, reg, "inst-1", models.YearThird, "arabic")
	service := NewRegistrationService(reg, zerolog.Nop())

	req := registerRequest("29805241234567")
	req.FullName = "أحمد"

	_, err := service.Register(context.Background(), "inst-1", req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFullName)
	assert.Empty(t, reg.StudentsByInstitute("inst-1"))
}

func TestRegister_UnknownInstitute(t *testing.T) {
	reg := newTestRegistry(t)
	service := NewRegistrationService(reg, zerolog.Nop())

	_, err := service.Register(context.Background(), "missing", registerRequest("29805241234567"))
	assert.ErrorIs(t, err, apperrors.ErrInstituteNotFound)
}

func TestRegister_DuplicateNationalID(t *testing.T) {
	reg := newTestRegistry(t)
	seedInstitute(t, reg, "inst-1", models.YearThird, "arabic")
	seedInstitute(t, reg, "inst-2", models.YearThird, "english")
	service := NewRegistrationService(reg, zerolog.Nop())
	ctx := context.Background()

	_, err := service.Register(ctx, "inst-1", registerRequest("29805241234567"))
	require.NoError(t, err)

	// The same national id may not hold a second seat anywhere.
	_, err = service.Register(ctx, "inst-2", registerRequest("29805241234567"))
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
	assert.Empty(t, reg.StudentsByInstitute("inst-2"))
}

func TestRegister_FullGroup(t *testing.T) {
	reg := newTestRegistry(t)
	seedInstitute(t, reg, "inst-1", models.YearThird, "arabic")
	service := NewRegistrationService(reg, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < models.InstituteCapacity; i++ {
		_, err := service.Register(ctx, "inst-1", registerRequest(fmt.Sprintf("298052412345%02d", i)))
		require.NoError(t, err)
	}

	_, err := service.Register(ctx, "inst-1", registerRequest("29805241234599"))
	assert.ErrorIs(t, err, apperrors.ErrInstituteFull)

	inst, _ := reg.InstituteByID("inst-1")
	assert.Equal(t, models.InstituteCapacity, inst.CurrentCount)
}

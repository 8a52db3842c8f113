package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tafahna/practicum-portal/internal/app/models"
	"github.com/tafahna/practicum-portal/internal/app/models/dto"
	"github.com/tafahna/practicum-portal/internal/app/registry"
	"github.com/tafahna/practicum-portal/internal/pkg/apperrors"
)

func TestDepartments(t *testing.T) {
	service := NewInstituteService(newTestRegistry(t), zerolog.Nop())

	departments := service.Departments()
	assert.Len(t, departments, len(models.Departments))
	assert.Equal(t, "islamic", departments[0].ID)
}

func TestInstitutes_InvalidYear(t *testing.T) {
	service := NewInstituteService(newTestRegistry(t), zerolog.Nop())

	_, err := service.Institutes(registry.InstituteFilter{Year: "fifth"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidYear)
}

func TestInstitutesGrouped_SortedByLocation(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()
	for i, location := range []string{"ميت غمر", "المنصورة", "دكرنس"} {
		require.NoError(t, reg.AddInstitute(ctx, &models.Institute{
			ID:           string(rune('a' + i)),
			Name:         "معهد " + location,
			Location:     location,
			DepartmentID: "arabic",
			Year:         models.YearThird,
			MaxCapacity:  models.InstituteCapacity,
		}))
	}

	service := NewInstituteService(reg, zerolog.Nop())
	grouped, err := service.InstitutesGrouped(registry.InstituteFilter{})
	require.NoError(t, err)
	require.Len(t, grouped, 3)

	// Group order is deterministic across calls.
	again, err := service.InstitutesGrouped(registry.InstituteFilter{})
	require.NoError(t, err)
	for i := range grouped {
		assert.Equal(t, grouped[i].Location, again[i].Location)
	}
}

func TestCreateInstitute_Validation(t *testing.T) {
	service := NewInstituteService(newTestRegistry(t), zerolog.Nop())
	ctx := context.Background()

	_, err := service.CreateInstitute(ctx, dto.CreateInstituteRequest{
		Name: " ", Location: "دكرنس", DepartmentID: "arabic", Year: models.YearThird,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = service.CreateInstitute(ctx, dto.CreateInstituteRequest{
		Name: "معهد", Location: "دكرنس", DepartmentID: "arabic", Year: "fifth",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidYear)

	_, err = service.CreateInstitute(ctx, dto.CreateInstituteRequest{
		Name: "معهد", Location: "دكرنس", DepartmentID: "nope", Year: models.YearThird,
	})
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
}

func TestCreateInstitute(t *testing.T) {
	reg := newTestRegistry(t)
	service := NewInstituteService(reg, zerolog.Nop())

	created, err := service.CreateInstitute(context.Background(), dto.CreateInstituteRequest{
		Name:         "  معهد دكرنس الأزهري  ",
		Location:     "دكرنس",
		DepartmentID: "english",
		Year:         models.YearFourth,
	})
	require.NoError(t, err)

	assert.Equal(t, "معهد دكرنس الأزهري", created.Name)
	assert.Equal(t, models.InstituteCapacity, created.MaxCapacity)
	assert.Equal(t, 0, created.CurrentCount)
	assert.False(t, created.IsFull)

	_, ok := reg.InstituteByID(created.ID)
	assert.True(t, ok)
}

func TestRemoveStudentByID(t *testing.T) {
	reg := newTestRegistry(t)
	seedInstitute(t, reg, "inst-1", models.YearThird, "arabic")
	require.NoError(t, reg.RegisterStudent(context.Background(), &models.Student{
		ID:          "stu-1",
		Name:        "أحمد محمد علي حسن",
		NationalID:  "29805241234567",
		Year:        models.YearThird,
		InstituteID: "inst-1",
	}))

	service := NewInstituteService(reg, zerolog.Nop())
	require.NoError(t, service.RemoveStudent(context.Background(), "stu-1"))

	inst, _ := reg.InstituteByID("inst-1")
	assert.Equal(t, 0, inst.CurrentCount)

	assert.ErrorIs(t, service.RemoveStudent(context.Background(), "stu-1"), apperrors.ErrStudentNotFound)
}

func TestStudents_SectionFilter(t *testing.T) {
	reg := newTestRegistry(t)
	seedInstitute(t, reg, "inst-1", models.YearThird, "arabic")
	seedInstitute(t, reg, "inst-2", models.YearFourth, "english")
	ctx := context.Background()
	require.NoError(t, reg.RegisterStudent(ctx, &models.Student{
		ID: "stu-1", Name: "أ", NationalID: "1", Year: models.YearThird, DepartmentID: "arabic", InstituteID: "inst-1",
	}))
	require.NoError(t, reg.RegisterStudent(ctx, &models.Student{
		ID: "stu-2", Name: "ب", NationalID: "2", Year: models.YearFourth, DepartmentID: "english", InstituteID: "inst-2",
	}))

	service := NewInstituteService(reg, zerolog.Nop())

	all, err := service.Students("", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	third, err := service.Students(models.YearThird, "arabic")
	require.NoError(t, err)
	require.Len(t, third, 1)
	assert.Equal(t, "stu-1", third[0].ID)

	_, err = service.Students("fifth", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidYear)

	_, err = service.Students("", "nope")
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
}

package services

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tafahna/practicum-portal/internal/app/models"
	"github.com/tafahna/practicum-portal/internal/pkg/apperrors"
)

func TestGenerateLetter(t *testing.T) {
	reg := newTestRegistry(t)
	seedInstitute(t, reg, "inst-1", models.YearFourth, "arabic")
	require.NoError(t, reg.RegisterStudent(context.Background(), &models.Student{
		ID:          "stu-1",
		Name:        "أحمد محمد علي حسن",
		NationalID:  "29805241234567",
		Year:        models.YearFourth,
		InstituteID: "inst-1",
	}))

	service := NewLetterService(reg, zerolog.Nop())
	letter, err := service.GenerateLetter("inst-1")
	require.NoError(t, err)

	assert.Contains(t, letter, "خطاب توجيه طلاب التربية العملية")
	assert.Contains(t, letter, "معهد تفهنا الأشراف الأزهري")
	assert.Contains(t, letter, "الفرقة الرابعة")
	assert.Contains(t, letter, "أحمد محمد علي حسن")
	assert.Contains(t, letter, "29805241234567")

	// One student plus five dotted placeholder rows.
	assert.Equal(t, models.InstituteCapacity-1, strings.Count(letter, `class="empty"`))
}

func TestGenerateLetter_ThirdYearWording(t *testing.T) {
	reg := newTestRegistry(t)
	seedInstitute(t, reg, "inst-1", models.YearThird, "arabic")

	service := NewLetterService(reg, zerolog.Nop())
	letter, err := service.GenerateLetter("inst-1")
	require.NoError(t, err)

	assert.Contains(t, letter, "الفرقة الثالثة")
	assert.Equal(t, models.InstituteCapacity, strings.Count(letter, `class="empty"`))
}

func TestGenerateLetter_UnknownInstitute(t *testing.T) {
	service := NewLetterService(newTestRegistry(t), zerolog.Nop())

	_, err := service.GenerateLetter("missing")
	assert.ErrorIs(t, err, apperrors.ErrInstituteNotFound)
}

func TestReferenceSegment(t *testing.T) {
	assert.Equal(t, "a1b2", referenceSegment("a1b2-c3d4-e5f6"))
	assert.Equal(t, "plain", referenceSegment("plain"))
}

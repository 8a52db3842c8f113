package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tafahna/practicum-portal/internal/app/models"
	"github.com/tafahna/practicum-portal/internal/app/registry"
)

// Towns hosting practicum institutes.
var locations = []string{
	"تفهنا الأشراف",
	"ميت غمر",
	"المنصورة",
	"السنبلاوين",
	"دكرنس",
}

// CreateDefaultData seeds the initial institute catalogue when the registry
// is empty: one institute per year, department and town. Special-education
// departments get integration institutes named after the disability track.
func CreateDefaultData(ctx context.Context, reg *registry.Registry, lgr zerolog.Logger) {
	if reg.HasInstitutes() {
		lgr.Debug().Msg("Institute catalogue already present, skipping seed")
		return
	}

	institutes := DefaultInstitutes()
	reg.SeedInstitutes(ctx, institutes)
	lgr.Info().Int("count", len(institutes)).Msg("Seeded default institute catalogue")
}

// DefaultInstitutes builds the full default catalogue.
func DefaultInstitutes() []*models.Institute {
	years := []models.Year{models.YearThird, models.YearFourth}

	institutes := make([]*models.Institute, 0, len(years)*len(models.Departments)*len(locations))
	for _, year := range years {
		for _, dept := range models.Departments {
			for i, location := range locations {
				institutes = append(institutes, &models.Institute{
					ID:           fmt.Sprintf("%s-%s-%d", year, dept.ID, i),
					Name:         instituteName(dept, location, i),
					Location:     location,
					DepartmentID: dept.ID,
					Year:         year,
					MaxCapacity:  models.InstituteCapacity,
				})
			}
		}
	}
	return institutes
}

// instituteName labels regular institutes by town and ordinal; integration
// institutes carry the disability track from the department name instead.
func instituteName(dept models.Department, location string, index int) string {
	if strings.HasPrefix(dept.ID, "special_") {
		if open := strings.Index(dept.Name, "("); open >= 0 {
			track := strings.TrimSuffix(dept.Name[open+1:], ")")
			return fmt.Sprintf("معهد %s - دمج (%s)", location, track)
		}
	}
	return fmt.Sprintf("معهد %s الأزهري (%d)", location, index+1)
}

package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tafahna/practicum-portal/internal/app/models"
	"github.com/tafahna/practicum-portal/internal/app/models/dto"
	"github.com/tafahna/practicum-portal/internal/app/registry"
	"github.com/tafahna/practicum-portal/internal/pkg/apperrors"
)

// InstituteService exposes the institute catalogue and the admin operations
// that maintain it.
type InstituteService struct {
	registry *registry.Registry
	logger   zerolog.Logger
}

// NewInstituteService creates a new institute service instance
func NewInstituteService(reg *registry.Registry, logger zerolog.Logger) *InstituteService {
	return &InstituteService{
		registry: reg,
		logger:   logger.With().Str("service", "institute").Logger(),
	}
}

// Departments returns the static department catalogue.
func (s *InstituteService) Departments() []dto.DepartmentResponse {
	responses := make([]dto.DepartmentResponse, 0, len(models.Departments))
	for _, dept := range models.Departments {
		responses = append(responses, dto.DepartmentResponse{ID: dept.ID, Name: dept.Name})
	}
	return responses
}

// Institutes returns the catalogue filtered by year, department and a
// free-text search over name and location.
func (s *InstituteService) Institutes(filter registry.InstituteFilter) ([]dto.InstituteResponse, error) {
	if filter.Year != "" && !filter.Year.Valid() {
		return nil, apperrors.ErrInvalidYear
	}
	return dto.NewInstituteResponses(s.registry.Institutes(filter)), nil
}

// InstitutesGrouped returns the filtered catalogue grouped by town, the
// shape the browse view renders.
func (s *InstituteService) InstitutesGrouped(filter registry.InstituteFilter) ([]dto.GroupedInstitutesResponse, error) {
	if filter.Year != "" && !filter.Year.Valid() {
		return nil, apperrors.ErrInvalidYear
	}

	grouped := s.registry.InstitutesByLocation(filter)

	locations := make([]string, 0, len(grouped))
	for location := range grouped {
		locations = append(locations, location)
	}
	sort.Strings(locations)

	responses := make([]dto.GroupedInstitutesResponse, 0, len(grouped))
	for _, location := range locations {
		responses = append(responses, dto.GroupedInstitutesResponse{
			Location:   location,
			Institutes: dto.NewInstituteResponses(grouped[location]),
		})
	}
	return responses, nil
}

// InstituteByID returns a single institute.
func (s *InstituteService) InstituteByID(id string) (*dto.InstituteResponse, error) {
	inst, ok := s.registry.InstituteByID(id)
	if !ok {
		return nil, apperrors.ErrInstituteNotFound
	}
	response := dto.NewInstituteResponse(inst)
	return &response, nil
}

// Roster returns the students registered at an institute.
func (s *InstituteService) Roster(instituteID string) ([]dto.StudentResponse, error) {
	if _, ok := s.registry.InstituteByID(instituteID); !ok {
		return nil, apperrors.ErrInstituteNotFound
	}
	return dto.NewStudentResponses(s.registry.StudentsByInstitute(instituteID)), nil
}

// Students returns registered students, optionally narrowed to one section
// (a year and department pair).
func (s *InstituteService) Students(year models.Year, departmentID string) ([]dto.StudentResponse, error) {
	if year != "" && !year.Valid() {
		return nil, apperrors.ErrInvalidYear
	}
	if departmentID != "" {
		if _, ok := models.DepartmentByID(departmentID); !ok {
			return nil, apperrors.ErrDepartmentNotFound
		}
	}
	return dto.NewStudentResponses(s.registry.StudentsBySection(year, departmentID)), nil
}

// CreateInstitute adds a new institute to the catalogue with an empty roster.
func (s *InstituteService) CreateInstitute(ctx context.Context, req dto.CreateInstituteRequest) (*dto.InstituteResponse, error) {
	name := strings.TrimSpace(req.Name)
	location := strings.TrimSpace(req.Location)
	if name == "" || location == "" {
		return nil, apperrors.NewValidationError("institute name and location are required")
	}
	if !req.Year.Valid() {
		return nil, apperrors.ErrInvalidYear
	}
	if _, ok := models.DepartmentByID(req.DepartmentID); !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}

	inst := &models.Institute{
		ID:           uuid.New().String(),
		Name:         name,
		Location:     location,
		DepartmentID: req.DepartmentID,
		Year:         req.Year,
		MaxCapacity:  models.InstituteCapacity,
	}
	if err := s.registry.AddInstitute(ctx, inst); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("instituteId", inst.ID).
		Str("departmentId", inst.DepartmentID).
		Str("year", string(inst.Year)).
		Msg("Institute created")

	response := dto.NewInstituteResponse(*inst)
	return &response, nil
}

// RenameInstitute updates an institute's display name.
func (s *InstituteService) RenameInstitute(ctx context.Context, id string, req dto.UpdateInstituteRequest) (*dto.InstituteResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("institute name is required")
	}

	if err := s.registry.RenameInstitute(ctx, id, name); err != nil {
		return nil, err
	}

	inst, _ := s.registry.InstituteByID(id)
	response := dto.NewInstituteResponse(inst)
	return &response, nil
}

// DeleteInstitute removes an institute together with every student on its
// roster and reports how many registrations were discarded.
func (s *InstituteService) DeleteInstitute(ctx context.Context, id string) (*dto.DeleteInstituteResponse, error) {
	removed, err := s.registry.DeleteInstitute(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("instituteId", id).
		Int("removedStudents", removed).
		Msg("Institute deleted")

	return &dto.DeleteInstituteResponse{RemovedStudents: removed}, nil
}

// RemoveStudent withdraws a student's registration and frees the seat.
func (s *InstituteService) RemoveStudent(ctx context.Context, studentID string) error {
	student, ok := s.registry.StudentByID(studentID)
	if !ok {
		return apperrors.ErrStudentNotFound
	}

	if err := s.registry.RemoveStudent(ctx, studentID, student.InstituteID); err != nil {
		return err
	}

	s.logger.Info().
		Str("studentId", studentID).
		Str("instituteId", student.InstituteID).
		Msg("Student registration removed")
	return nil
}

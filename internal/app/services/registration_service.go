package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tafahna/practicum-portal/internal/app/models/dto"
	"github.com/tafahna/practicum-portal/internal/app/registry"
	"github.com/tafahna/practicum-portal/internal/app/rules"
	"github.com/tafahna/practicum-portal/internal/pkg/apperrors"
)

// RegistrationService admits students into institute practicum groups.
type RegistrationService struct {
	registry *registry.Registry
	logger   zerolog.Logger
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(reg *registry.Registry, logger zerolog.Logger) *RegistrationService {
	return &RegistrationService{
		registry: reg,
		logger:   logger.With().Str("service", "registration").Logger(),
	}
}

// Register runs the admission pipeline for one seat: identity validation,
// duplicate and capacity checks, then the registry mutation. Nothing is
// persisted when any check fails.
func (s *RegistrationService) Register(ctx context.Context, instituteID string, req dto.RegisterStudentRequest) (*dto.RegistrationResponse, error) {
	input := rules.AdmissionInput{
		FullName:    req.FullName,
		NationalID:  req.NationalID,
		PhoneNumber: req.PhoneNumber,
	}
	if err := rules.ValidateIdentity(input); err != nil {
		return nil, err
	}

	inst, ok := s.registry.InstituteByID(instituteID)
	if !ok {
		return nil, apperrors.ErrInstituteNotFound
	}

	_, alreadyRegistered := s.registry.StudentByNationalID(req.NationalID)
	if err := rules.CheckAdmission(inst, alreadyRegistered); err != nil {
		return nil, err
	}

	student := rules.NewStudent(input, inst)
	if err := s.registry.RegisterStudent(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("studentId", student.ID).
		Str("instituteId", instituteID).
		Str("departmentId", student.DepartmentID).
		Str("year", string(student.Year)).
		Msg("Student registered")

	updated, _ := s.registry.InstituteByID(instituteID)
	return &dto.RegistrationResponse{
		Student:   dto.NewStudentResponse(*student),
		Institute: dto.NewInstituteResponse(updated),
	}, nil
}

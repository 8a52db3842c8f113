// Package rules holds the pure admission logic for practicum registration.
// It has no storage or transport dependencies so the checks can be exercised
// directly in tests and reused by any caller that mutates the registry.
package rules

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tafahna/practicum-portal/internal/app/models"
	"github.com/tafahna/practicum-portal/internal/pkg/apperrors"
	"github.com/tafahna/practicum-portal/internal/pkg/validation"
)

// AdmissionInput is the identity a student submits when registering.
type AdmissionInput struct {
	FullName    string
	NationalID  string
	PhoneNumber string
}

// ValidateIdentity checks the submitted identity fields against the portal's
// format rules. The first failing rule wins.
func ValidateIdentity(in AdmissionInput) error {
	if !validation.IsValidFullName(in.FullName) {
		return apperrors.ErrInvalidFullName
	}
	if !validation.IsValidNationalID(in.NationalID) {
		return apperrors.ErrInvalidNationalID
	}
	if !validation.IsValidPhoneNumber(in.PhoneNumber) {
		return apperrors.ErrInvalidPhone
	}
	return nil
}

// CheckAdmission decides whether a validated student may join the institute.
// alreadyRegistered reflects a national-id match anywhere in the portal: a
// student holds at most one seat at a time.
func CheckAdmission(inst models.Institute, alreadyRegistered bool) error {
	if alreadyRegistered {
		return apperrors.ErrAlreadyRegistered
	}
	if inst.Full() {
		return apperrors.ErrInstituteFull
	}
	return nil
}

// NewStudent shapes the student record admitted into inst. Year and
// department are taken from the institute, never from the caller, so a seat
// always belongs to the section it was offered in.
func NewStudent(in AdmissionInput, inst models.Institute) *models.Student {
	return &models.Student{
		ID:           uuid.New().String(),
		Name:         strings.Join(strings.Fields(in.FullName), " "),
		NationalID:   in.NationalID,
		PhoneNumber:  in.PhoneNumber,
		Year:         inst.Year,
		DepartmentID: inst.DepartmentID,
		InstituteID:  inst.ID,
	}
}

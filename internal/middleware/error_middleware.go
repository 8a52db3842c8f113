package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tafahna/practicum-portal/internal/app/models/dto"
	"github.com/tafahna/practicum-portal/internal/pkg/apperrors"
)

// HandleAPIError maps application errors onto the standard error envelope.
// Controllers call it with whatever their service returned.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidFullName):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidFullName, err.Error(), "fullName")
	case errors.Is(err, apperrors.ErrInvalidNationalID):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidNationalID, err.Error(), "nationalId")
	case errors.Is(err, apperrors.ErrInvalidPhone):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidPhone, err.Error(), "phoneNumber")
	case errors.Is(err, apperrors.ErrInvalidYear):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidYear, err.Error(), "year")
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error(), "")
	case errors.Is(err, apperrors.ErrAlreadyRegistered):
		respondError(c, http.StatusConflict, dto.ErrorCodeAlreadyRegistered, err.Error(), "nationalId")
	case errors.Is(err, apperrors.ErrInstituteFull):
		respondError(c, http.StatusConflict, dto.ErrorCodeInstituteFull, err.Error(), "")
	case errors.Is(err, apperrors.ErrAssistantBusy):
		respondError(c, http.StatusConflict, dto.ErrorCodeAssistantBusy, err.Error(), "")
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceConflict, err.Error(), "")
	case errors.Is(err, apperrors.ErrInstituteNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrDepartmentNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err.Error(), "")
	case errors.Is(err, apperrors.ErrInvalidPasscode):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidPasscode, err.Error(), "passcode")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, err.Error(), "")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, err.Error(), "")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, err.Error(), "")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeUnauthorized, err.Error(), "")
	default:
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error", "")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message, field string) {
	detail := dto.NewErrorDetail(code, message)
	if field != "" {
		detail = detail.WithField(field)
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tafahna/practicum-portal/internal/app/models/dto"
	"github.com/tafahna/practicum-portal/internal/app/services"
	"github.com/tafahna/practicum-portal/internal/middleware"
)

// RegistrationController handles practicum seat registration
type RegistrationController struct {
	registrationService *services.RegistrationService
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService *services.RegistrationService) *RegistrationController {
	return &RegistrationController{registrationService: registrationService}
}

// Register claims a seat at an institute
// @Summary Register for a practicum seat
// @Description Validates the student identity and admits them into the institute's group
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institute id"
// @Param request body dto.RegisterStudentRequest true "Student identity"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse} "Seat granted"
// @Failure 400 {object} dto.ErrorResponse "Invalid identity data"
// @Failure 404 {object} dto.ErrorResponse "Institute not found"
// @Failure 409 {object} dto.ErrorResponse "Group full or national id already registered"
// @Router /institutes/{id}/registrations [post]
func (c *RegistrationController) Register(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.registrationService.Register(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(response, "Seat granted"))
}

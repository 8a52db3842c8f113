package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tafahna/practicum-portal/internal/app/models"
	"github.com/tafahna/practicum-portal/internal/app/models/dto"
	"github.com/tafahna/practicum-portal/internal/app/registry"
	"github.com/tafahna/practicum-portal/internal/app/services"
	"github.com/tafahna/practicum-portal/internal/middleware"
)

// InstituteController handles catalogue browsing and the admin operations
// on institutes and registrations.
type InstituteController struct {
	instituteService *services.InstituteService
}

// NewInstituteController creates a new InstituteController
func NewInstituteController(instituteService *services.InstituteService) *InstituteController {
	return &InstituteController{instituteService: instituteService}
}

func catalogueFilter(ctx *gin.Context) registry.InstituteFilter {
	return registry.InstituteFilter{
		Year:         models.Year(ctx.Query("year")),
		DepartmentID: ctx.Query("departmentId"),
		Search:       ctx.Query("search"),
	}
}

// GetDepartments lists the practicum departments
// @Summary List departments
// @Description Returns the static department catalogue
// @Tags departments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.DepartmentResponse} "Departments retrieved"
// @Router /departments [get]
func (c *InstituteController) GetDepartments(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(c.instituteService.Departments(), ""))
}

// GetInstitutes lists institutes with optional filters
// @Summary List institutes
// @Description Returns institutes filtered by year, department and free-text search
// @Tags institutes
// @Produce json
// @Security BearerAuth
// @Param year query string false "Year track" Enums(third, fourth)
// @Param departmentId query string false "Department id"
// @Param search query string false "Search over name and location"
// @Success 200 {object} dto.APIResponse{data=[]dto.InstituteResponse} "Institutes retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid year track"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /institutes [get]
func (c *InstituteController) GetInstitutes(ctx *gin.Context) {
	institutes, err := c.instituteService.Institutes(catalogueFilter(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(institutes, ""))
}

// GetInstitutesGrouped lists institutes grouped by town
// @Summary List institutes grouped by location
// @Description Returns the filtered catalogue grouped by town for the browse view
// @Tags institutes
// @Produce json
// @Security BearerAuth
// @Param year query string false "Year track" Enums(third, fourth)
// @Param departmentId query string false "Department id"
// @Param search query string false "Search over name and location"
// @Success 200 {object} dto.APIResponse{data=[]dto.GroupedInstitutesResponse} "Institutes retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid year track"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /institutes/grouped [get]
func (c *InstituteController) GetInstitutesGrouped(ctx *gin.Context) {
	grouped, err := c.instituteService.InstitutesGrouped(catalogueFilter(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grouped, ""))
}

// GetInstituteByID retrieves one institute
// @Summary Get institute
// @Tags institutes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institute id"
// @Success 200 {object} dto.APIResponse{data=dto.InstituteResponse} "Institute retrieved"
// @Failure 404 {object} dto.ErrorResponse "Institute not found"
// @Router /institutes/{id} [get]
func (c *InstituteController) GetInstituteByID(ctx *gin.Context) {
	inst, err := c.instituteService.InstituteByID(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(inst, ""))
}

// GetInstituteStudents lists an institute's roster
// @Summary Get institute roster
// @Tags institutes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institute id"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse} "Roster retrieved"
// @Failure 404 {object} dto.ErrorResponse "Institute not found"
// @Router /institutes/{id}/students [get]
func (c *InstituteController) GetInstituteStudents(ctx *gin.Context) {
	roster, err := c.instituteService.Roster(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(roster, ""))
}

// GetStudents lists registered students, optionally by section
// @Summary List students
// @Description Returns registered students, optionally narrowed to a year and department
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param year query string false "Year track" Enums(third, fourth)
// @Param departmentId query string false "Department id"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse} "Students retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid year track"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /students [get]
func (c *InstituteController) GetStudents(ctx *gin.Context) {
	students, err := c.instituteService.Students(models.Year(ctx.Query("year")), ctx.Query("departmentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students, ""))
}

// CreateInstitute adds an institute to the catalogue
// @Summary Create institute
// @Tags institutes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInstituteRequest true "Institute data"
// @Success 201 {object} dto.APIResponse{data=dto.InstituteResponse} "Institute created"
// @Failure 400 {object} dto.ErrorResponse "Invalid institute data"
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /institutes [post]
func (c *InstituteController) CreateInstitute(ctx *gin.Context) {
	var req dto.CreateInstituteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid institute data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	inst, err := c.instituteService.CreateInstitute(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(inst, "Institute created"))
}

// UpdateInstitute renames an institute
// @Summary Rename institute
// @Tags institutes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institute id"
// @Param request body dto.UpdateInstituteRequest true "New name"
// @Success 200 {object} dto.APIResponse{data=dto.InstituteResponse} "Institute updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid institute data"
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Failure 404 {object} dto.ErrorResponse "Institute not found"
// @Router /institutes/{id} [put]
func (c *InstituteController) UpdateInstitute(ctx *gin.Context) {
	var req dto.UpdateInstituteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid institute data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	inst, err := c.instituteService.RenameInstitute(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(inst, "Institute updated"))
}

// DeleteInstitute removes an institute and its roster
// @Summary Delete institute
// @Description Removes the institute together with every registration on its roster
// @Tags institutes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institute id"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteInstituteResponse} "Institute deleted"
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Failure 404 {object} dto.ErrorResponse "Institute not found"
// @Router /institutes/{id} [delete]
func (c *InstituteController) DeleteInstitute(ctx *gin.Context) {
	result, err := c.instituteService.DeleteInstitute(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result, "Institute deleted"))
}

// DeleteStudent withdraws a student's registration
// @Summary Remove student
// @Description Withdraws the registration and frees the seat
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student id"
// @Success 200 {object} dto.APIResponse "Registration removed"
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (c *InstituteController) DeleteStudent(ctx *gin.Context) {
	if err := c.instituteService.RemoveStudent(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Registration removed"))
}

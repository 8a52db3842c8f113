package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tafahna/practicum-portal/internal/app/models/dto"
	"github.com/tafahna/practicum-portal/internal/app/services"
	"github.com/tafahna/practicum-portal/internal/middleware"
)

// AuthController handles authentication operations
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login signs a student in with their identity
// @Summary Sign in
// @Description Issues an access token for the submitted student identity
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Student identity"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Session issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid identity data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.authService.Login(req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response, "Signed in"))
}

// UnlockAdmin elevates the current session with the supervisor passcode
// @Summary Unlock admin role
// @Description Reissues the session token with the admin role when the passcode matches
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AdminUnlockRequest true "Supervisor passcode"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Session elevated"
// @Failure 401 {object} dto.ErrorResponse "Wrong passcode or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/admin/unlock [post]
func (c *AuthController) UnlockAdmin(ctx *gin.Context) {
	session, ok := middleware.SessionFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.AdminUnlockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid unlock data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.authService.UnlockAdmin(session, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response, "Admin role unlocked"))
}

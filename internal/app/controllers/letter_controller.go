package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tafahna/practicum-portal/internal/app/services"
	"github.com/tafahna/practicum-portal/internal/middleware"
)

// LetterController serves printable assignment letters
type LetterController struct {
	letterService *services.LetterService
}

// NewLetterController creates a new LetterController
func NewLetterController(letterService *services.LetterService) *LetterController {
	return &LetterController{letterService: letterService}
}

// GetLetter renders the assignment letter for an institute
// @Summary Generate assignment letter
// @Description Renders the printable letter addressed to the institute with its roster
// @Tags letters
// @Produce html
// @Security BearerAuth
// @Param id path string true "Institute id"
// @Success 200 {string} string "Letter HTML"
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Failure 404 {object} dto.ErrorResponse "Institute not found"
// @Router /institutes/{id}/letter [get]
func (c *LetterController) GetLetter(ctx *gin.Context) {
	letter, err := c.letterService.GenerateLetter(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(letter))
}

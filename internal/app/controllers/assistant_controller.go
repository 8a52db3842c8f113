package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tafahna/practicum-portal/internal/app/models/dto"
	"github.com/tafahna/practicum-portal/internal/app/services"
	"github.com/tafahna/practicum-portal/internal/middleware"
)

// AssistantController handles the study assistant conversation
type AssistantController struct {
	assistantService *services.AssistantService
}

// NewAssistantController creates a new AssistantController
func NewAssistantController(assistantService *services.AssistantService) *AssistantController {
	return &AssistantController{assistantService: assistantService}
}

// GetTranscript returns the session's conversation history
// @Summary Get assistant transcript
// @Tags assistant
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AssistantTranscriptResponse} "Transcript retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /assistant/transcript [get]
func (c *AssistantController) GetTranscript(ctx *gin.Context) {
	session, ok := middleware.SessionFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(c.assistantService.Transcript(session.NationalID), ""))
}

// SendMessage sends a message to the assistant
// @Summary Send assistant message
// @Description Appends the message to the transcript and returns the assistant's reply
// @Tags assistant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AssistantMessageRequest true "Message"
// @Success 200 {object} dto.APIResponse{data=dto.AssistantReplyResponse} "Reply generated"
// @Failure 400 {object} dto.ErrorResponse "Empty message"
// @Failure 409 {object} dto.ErrorResponse "A message is already being processed"
// @Router /assistant/messages [post]
func (c *AssistantController) SendMessage(ctx *gin.Context) {
	session, ok := middleware.SessionFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.AssistantMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid message data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.assistantService.SendMessage(ctx, session.NationalID, req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response, ""))
}

package dto

// AssistantMessageRequest carries one user message to the study assistant
type AssistantMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// AssistantTurnResponse represents one turn of an assistant conversation
type AssistantTurnResponse struct {
	Role string `json:"role" example:"model" enums:"user,model"`
	Text string `json:"text"`
}

// AssistantReplyResponse represents the assistant's answer to a message
type AssistantReplyResponse struct {
	Reply string `json:"reply"`
}

// AssistantTranscriptResponse represents the visible conversation history
type AssistantTranscriptResponse struct {
	Turns []AssistantTurnResponse `json:"turns"`
}

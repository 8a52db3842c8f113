package services

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tafahna/practicum-portal/internal/app/models"
	"github.com/tafahna/practicum-portal/internal/app/models/dto"
	"github.com/tafahna/practicum-portal/internal/pkg/apperrors"
	"github.com/tafahna/practicum-portal/internal/pkg/genai"
)

// Assistant persona and canned texts. The greeting is synthesized locally
// and never sent to the model; leading model turns are filtered out of the
// outbound history so it always starts with a user turn.
const (
	assistantSystemInstruction = `أنت مساعد ذكي مخصص لطلاب كلية التربية بنين بتفهنا الأشراف، جامعة الأزهر. لقب الطلاب بـ "معلم المستقبل". ساعدهم في استفسارات التربية العملية والشعب والمعاهد. كن ودوداً ومختصراً وأجب بالعربية.`

	assistantGreeting = "مرحبًا يا معلم المستقبل، أنا مساعدك الذكي في كلية التربية. كيف يمكنني مساعدتك اليوم في تسجيل التربية العملية؟"

	assistantEmptyReply = "عذراً يا معلم المستقبل، لم أستطع فهم الطلب حالياً."

	assistantApology = "عذراً يا معلم المستقبل، حدث خطأ تقني بسيط في الاتصال. يرجى المحاولة مرة أخرى أو التأكد من استقرار الإنترنت لديك."
)

type assistantSession struct {
	turns []models.ChatTurn
	busy  bool
}

// AssistantService runs the study assistant: one transcript per signed-in
// student, one in-flight message per transcript.
type AssistantService struct {
	client *genai.Client
	logger zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*assistantSession
}

// NewAssistantService creates a new assistant service instance
func NewAssistantService(client *genai.Client, logger zerolog.Logger) *AssistantService {
	return &AssistantService{
		client:   client,
		logger:   logger.With().Str("service", "assistant").Logger(),
		sessions: make(map[string]*assistantSession),
	}
}

// Transcript returns the visible conversation for the session, creating it
// with the greeting turn on first access.
func (s *AssistantService) Transcript(sessionKey string) *dto.AssistantTranscriptResponse {
	s.mu.Lock()
	session := s.sessionLocked(sessionKey)
	turns := make([]dto.AssistantTurnResponse, 0, len(session.turns))
	for _, turn := range session.turns {
		turns = append(turns, dto.AssistantTurnResponse{Role: turn.Role, Text: turn.Text})
	}
	s.mu.Unlock()

	return &dto.AssistantTranscriptResponse{Turns: turns}
}

// SendMessage appends the user's message to the transcript, asks the model
// for a reply and appends it. Model failures never surface to the caller:
// after a stateless retry the canned apology becomes the reply. Only one
// message per session may be in flight.
func (s *AssistantService) SendMessage(ctx context.Context, sessionKey, message string) (*dto.AssistantReplyResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.NewValidationError("message must not be empty")
	}

	s.mu.Lock()
	session := s.sessionLocked(sessionKey)
	if session.busy {
		s.mu.Unlock()
		return nil, apperrors.ErrAssistantBusy
	}
	session.busy = true
	session.turns = append(session.turns, models.ChatTurn{Role: models.ChatRoleUser, Text: message})
	history := outboundHistory(session.turns)
	s.mu.Unlock()

	reply := s.generateReply(ctx, message, history)

	s.mu.Lock()
	session.turns = append(session.turns, models.ChatTurn{Role: models.ChatRoleModel, Text: reply})
	session.busy = false
	s.mu.Unlock()

	return &dto.AssistantReplyResponse{Reply: reply}, nil
}

// generateReply tries the full history first, then a stateless call with
// only the new message, then gives up with the apology.
func (s *AssistantService) generateReply(ctx context.Context, message string, history []genai.Content) string {
	reply, err := s.client.GenerateContent(ctx, assistantSystemInstruction, history)
	if err == nil {
		return replyOrFallback(reply)
	}
	s.logger.Warn().Err(err).Msg("Assistant call failed, retrying without history")

	stateless := []genai.Content{{
		Role:  models.ChatRoleUser,
		Parts: []genai.Part{{Text: message}},
	}}
	reply, err = s.client.GenerateContent(ctx, assistantSystemInstruction, stateless)
	if err == nil {
		return replyOrFallback(reply)
	}
	s.logger.Error().Err(err).Msg("Assistant unavailable")

	return assistantApology
}

func replyOrFallback(reply string) string {
	if strings.TrimSpace(reply) == "" {
		return assistantEmptyReply
	}
	return reply
}

// sessionLocked returns the session for key, creating it with the greeting
// turn when missing. Callers hold s.mu.
func (s *AssistantService) sessionLocked(key string) *assistantSession {
	session, ok := s.sessions[key]
	if !ok {
		session = &assistantSession{
			turns: []models.ChatTurn{{Role: models.ChatRoleModel, Text: assistantGreeting}},
		}
		s.sessions[key] = session
	}
	return session
}

// outboundHistory maps transcript turns onto request contents, dropping
// leading model turns so the history starts with a user turn.
func outboundHistory(turns []models.ChatTurn) []genai.Content {
	start := 0
	for start < len(turns) && turns[start].Role == models.ChatRoleModel {
		start++
	}

	contents := make([]genai.Content, 0, len(turns)-start)
	for _, turn := range turns[start:] {
		contents = append(contents, genai.Content{
			Role:  turn.Role,
			Parts: []genai.Part{{Text: turn.Text}},
		})
	}
	return contents
}

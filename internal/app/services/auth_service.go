package services

import (
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tafahna/practicum-portal/internal/app/models"
	"github.com/tafahna/practicum-portal/internal/app/models/dto"
	"github.com/tafahna/practicum-portal/internal/pkg/apperrors"
	"github.com/tafahna/practicum-portal/internal/pkg/auth"
	"github.com/tafahna/practicum-portal/internal/pkg/validation"
)

// AuthService issues portal sessions. Students sign in with their identity
// only, there are no accounts; the supervisor passcode elevates an existing
// session to the admin role.
type AuthService struct {
	jwtService   *auth.JWTService
	passcodeHash []byte
	logger       zerolog.Logger
}

// NewAuthService creates a new auth service. The shared admin passcode is
// hashed once at construction so the plaintext never sits in memory longer
// than config loading.
func NewAuthService(jwtService *auth.JWTService, adminPasscode string, logger zerolog.Logger) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPasscode), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &AuthService{
		jwtService:   jwtService,
		passcodeHash: hash,
		logger:       logger.With().Str("service", "auth").Logger(),
	}, nil
}

// Login validates the submitted identity and issues a student-role token.
func (s *AuthService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	if !validation.IsValidFullName(req.Username) {
		return nil, apperrors.ErrInvalidFullName
	}
	if !validation.IsValidNationalID(req.NationalID) {
		return nil, apperrors.ErrInvalidNationalID
	}
	if req.PhoneNumber != "" && !validation.IsValidPhoneNumber(req.PhoneNumber) {
		return nil, apperrors.ErrInvalidPhone
	}

	session := models.Session{
		Username:    req.Username,
		NationalID:  req.NationalID,
		PhoneNumber: req.PhoneNumber,
		Role:        models.RoleStudent,
	}

	response, err := s.issueToken(session)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("nationalId", session.NationalID).
		Msg("Student session issued")
	return response, nil
}

// UnlockAdmin verifies the supervisor passcode and reissues the session
// with the admin role.
func (s *AuthService) UnlockAdmin(session models.Session, req dto.AdminUnlockRequest) (*dto.AuthResponse, error) {
	if err := bcrypt.CompareHashAndPassword(s.passcodeHash, []byte(req.Passcode)); err != nil {
		s.logger.Warn().
			Str("nationalId", session.NationalID).
			Msg("Admin unlock rejected")
		return nil, apperrors.ErrInvalidPasscode
	}

	session.Role = models.RoleAdmin
	response, err := s.issueToken(session)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("nationalId", session.NationalID).
		Msg("Session elevated to admin")
	return response, nil
}

func (s *AuthService) issueToken(session models.Session) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(&session)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign access token")
		return nil, err
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(expiresIn),
		},
		Session: dto.NewSessionResponse(session),
	}, nil
}

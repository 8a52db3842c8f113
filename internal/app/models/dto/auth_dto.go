package dto

import "github.com/tafahna/practicum-portal/internal/app/models"

// LoginRequest represents the identity a student signs in with
type LoginRequest struct {
	Username    string `json:"username" binding:"required"`
	NationalID  string `json:"nationalId" binding:"required"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// AdminUnlockRequest carries the supervisor passcode used to elevate a session
type AdminUnlockRequest struct {
	Passcode string `json:"passcode" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// SessionResponse represents the authenticated identity echoed back to the client
type SessionResponse struct {
	Username    string      `json:"username"`
	NationalID  string      `json:"nationalId"`
	PhoneNumber string      `json:"phoneNumber,omitempty"`
	Role        models.Role `json:"role" example:"student" enums:"student,admin"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token   TokenResponse   `json:"token"`
	Session SessionResponse `json:"session"`
}

// NewSessionResponse maps a session onto its API representation
func NewSessionResponse(session models.Session) SessionResponse {
	return SessionResponse{
		Username:    session.Username,
		NationalID:  session.NationalID,
		PhoneNumber: session.PhoneNumber,
		Role:        session.Role,
	}
}

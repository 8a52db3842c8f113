package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tafahna/practicum-portal/internal/app/models"
	"github.com/tafahna/practicum-portal/internal/app/models/dto"
	"github.com/tafahna/practicum-portal/internal/pkg/apperrors"
	"github.com/tafahna/practicum-portal/internal/pkg/auth"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	service, err := NewAuthService(jwtService, "2055", zerolog.Nop())
	require.NoError(t, err)
	return service
}

func validLogin() dto.LoginRequest {
	return dto.LoginRequest{
		Username:    "أحمد محمد علي حسن",
		NationalID:  "29805241234567",
		PhoneNumber: "01012345678",
	}
}

func TestLogin(t *testing.T) {
	service := newAuthService(t)

	response, err := service.Login(validLogin())
	require.NoError(t, err)
	assert.NotEmpty(t, response.Token.AccessToken)
	assert.Equal(t, "Bearer", response.Token.TokenType)
	assert.Equal(t, models.RoleStudent, response.Session.Role)
}

func TestLogin_InvalidIdentity(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.LoginRequest)
		wantErr error
	}{
		{
			name:    "short name",
			mutate:  func(r *dto.LoginRequest) { r.Username = "أحمد محمد" },
			wantErr: apperrors.ErrInvalidFullName,
		},
		{
			name:    "bad national id",
			mutate:  func(r *dto.LoginRequest) { r.NationalID = "123" },
			wantErr: apperrors.ErrInvalidNationalID,
		},
		{
			name:    "bad phone",
			mutate:  func(r *dto.LoginRequest) { r.PhoneNumber = "abc" },
			wantErr: apperrors.ErrInvalidPhone,
		},
	}

	service := newAuthService(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validLogin()
			tt.mutate(&req)

			_, err := service.Login(req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogin_PhoneOptional(t *testing.T) {
	service := newAuthService(t)

	req := validLogin()
	req.PhoneNumber = ""

	_, err := service.Login(req)
	assert.NoError(t, err)
}

func TestUnlockAdmin(t *testing.T) {
	service := newAuthService(t)
	session := models.Session{
		Username:   "أحمد محمد علي حسن",
		NationalID: "29805241234567",
		Role:       models.RoleStudent,
	}

	response, err := service.UnlockAdmin(session, dto.AdminUnlockRequest{Passcode: "2055"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, response.Session.Role)
	assert.NotEmpty(t, response.Token.AccessToken)
}

func TestUnlockAdmin_WrongPasscode(t *testing.T) {
	service := newAuthService(t)

	_, err := service.UnlockAdmin(models.Session{Role: models.RoleStudent}, dto.AdminUnlockRequest{Passcode: "0000"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPasscode)
}

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/kriyahr/workforce-backend-go/internal/domain/user"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type TokenResponse struct {
	AccessToken          string
	AccessTokenExpiresAt int64
}

type Service struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewService(userRepo user.UserRepository, jwtService jwt.Service) *Service {
	return &Service{userRepo: userRepo, jwtService: jwtService}
}

// Login checks credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	userData, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return TokenResponse{}, user.ErrInvalidCredentials
		}
		return TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return TokenResponse{}, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(password)); err != nil {
		return TokenResponse{}, user.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(userData.ID, userData.Email, userData.CompanyID, userData.IsAdmin)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return TokenResponse{AccessToken: token, AccessTokenExpiresAt: expiresAt}, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/auth"
)

// AuthService handles registration, login and profile lookup.
type AuthService struct {
	store      repositories.Store
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(store repositories.Store, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		store:      store,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new user account. The password is stored hashed;
// the plaintext never reaches the store.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	role := models.Role(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, req.Role)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Password: hashed,
		Role:     role,
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.TrimSpace(req.Email),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("username", user.Username).Msg("Failed to create user")
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return user, nil
}

// Login verifies the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Same failure as a bad password; do not leak which usernames exist
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to issue token")
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      user,
	}, nil
}

// GetProfile returns the authenticated caller's own user record.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.store.GetUser(ctx, userID)
}

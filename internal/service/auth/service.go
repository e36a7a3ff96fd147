package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clocklab/timesheet-backend-go/internal/domain/auth"
	"github.com/clocklab/timesheet-backend-go/internal/domain/user"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	user.UserRepository
	jwtService jwt.Service
	logger     *slog.Logger
}

func NewService(userRepo user.UserRepository, jwtService jwt.Service, logger *slog.Logger) *Service {
	return &Service{
		UserRepository: userRepo,
		jwtService:     jwtService,
		logger:         logger,
	}
}

func (s *Service) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenPairResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenPairResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenPairResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         user.RoleEmployee,
	})
	if err != nil {
		return auth.TokenPairResponse{}, err
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", created.ID),
		slog.String("email", created.Email),
	)

	return s.tokenPair(created)
}

func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenPairResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenPairResponse{}, err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenPairResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenPairResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenPairResponse{}, auth.ErrInvalidCredentials
	}

	return s.tokenPair(u)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.TokenPairResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.TokenPairResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenPairResponse{}, auth.ErrInvalidToken
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenPairResponse{}, err
	}

	// Refresh rotation: the presented token is single use.
	s.jwtService.RevokeToken(refreshToken)

	return s.tokenPair(u)
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	s.jwtService.RevokeToken(refreshToken)
	return nil
}

func (s *Service) tokenPair(u user.User) (auth.TokenPairResponse, error) {
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.TokenPairResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, _, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenPairResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenPairResponse{
		AccessToken:  accessToken,
		ExpiresAt:    expiresAt,
		RefreshToken: refreshToken,
		User:         user.ToResponse(u),
	}, nil
}

package auth

import "context"

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (TokenPairResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenPairResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPairResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

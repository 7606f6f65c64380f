package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/ksusheel25/hr-management-system/internal/domain/user"
	"github.com/ksusheel25/hr-management-system/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	user.Repository
	jwtService jwt.Service
}

func NewAuthService(repo user.Repository, jwtService jwt.Service) user.AuthService {
	return &AuthServiceImpl{Repository: repo, jwtService: jwtService}
}

// Login implements user.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req user.LoginRequest) (user.TokenResponse, *http.Cookie, error) {
	if err := req.Validate(); err != nil {
		return user.TokenResponse{}, nil, err
	}

	userData, err := a.Repository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.TokenResponse{}, nil, user.ErrInvalidCredentials
		}
		return user.TokenResponse{}, nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return user.TokenResponse{}, nil, user.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := a.jwtService.GenerateAccessToken(
		userData.ID, userData.Email, userData.EmployeeID, userData.CompanyID, userData.Role)
	if err != nil {
		return user.TokenResponse{}, nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := a.jwtService.GenerateRefreshToken(userData.ID)
	if err != nil {
		return user.TokenResponse{}, nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return user.TokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt,
		Role:                 userData.Role,
	}, a.jwtService.RefreshTokenCookie(refreshToken, refreshExpiresAt), nil
}

// Refresh implements user.AuthService.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (user.TokenResponse, error) {
	token, err := a.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return user.TokenResponse{}, user.ErrInvalidCredentials
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return user.TokenResponse{}, user.ErrInvalidCredentials
	}
	userIDVal, ok := token.Get("user_id")
	if !ok {
		return user.TokenResponse{}, user.ErrInvalidCredentials
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return user.TokenResponse{}, user.ErrInvalidCredentials
	}

	userData, err := a.Repository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.TokenResponse{}, user.ErrInvalidCredentials
		}
		return user.TokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	accessToken, expiresAt, err := a.jwtService.GenerateAccessToken(
		userData.ID, userData.Email, userData.EmployeeID, userData.CompanyID, userData.Role)
	if err != nil {
		return user.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return user.TokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt,
		Role:                 userData.Role,
	}, nil
}

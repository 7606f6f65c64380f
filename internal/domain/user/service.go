package user

import (
	"context"
	"net/http"
)

type AuthService interface {
	// Login verifies credentials and issues an access token plus a refresh
	// cookie
	Login(ctx context.Context, req LoginRequest) (TokenResponse, *http.Cookie, error)

	// Refresh exchanges a valid refresh token for a new access token
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
}

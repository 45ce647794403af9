package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portssvc "github.com/trustnest/trustnest_backend/internal/core/ports/services"
	"github.com/trustnest/trustnest_backend/pkg/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService implements the TokenSvcFacade interface.
type tokenService struct {
	jwtSecret   string
	jwtDuration time.Duration
	jwtIssuer   string
}

// NewTokenService creates a new token service from the application config.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{
		jwtSecret:   cfg.JWTSecret,
		jwtDuration: cfg.JWTExpiryDuration,
		jwtIssuer:   cfg.JWTIssuer,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a signed JWT for the user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.jwtDuration)
	claims := jwt.RegisteredClaims{
		Issuer:    s.jwtIssuer,
		Subject:   user.UserID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// googleIdentityService implements the GoogleIdentitySvcFacade interface.
// It is the glue to the managed identity provider: the frontend sends an
// authorization code, we exchange it with Google, validate the returned ID
// token, and resolve the Google profile to a local user.
type googleIdentityService struct {
	BaseService
	oauth2Config *oauth2.Config
	clientID     string
	userService  portssvc.UserSvcFacade
}

// NewGoogleIdentityService creates the Google OAuth glue service.
func NewGoogleIdentityService(cfg *config.Config, userService portssvc.UserSvcFacade) portssvc.GoogleIdentitySvcFacade {
	return &googleIdentityService{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		clientID:    cfg.GoogleClientID,
		userService: userService,
	}
}

var _ portssvc.GoogleIdentitySvcFacade = (*googleIdentityService)(nil)

// ExchangeCode exchanges an authorization code for Google tokens, validates
// the ID token, and finds or creates the matching local user.
func (s *googleIdentityService) ExchangeCode(ctx context.Context, code string) (*domain.User, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	idTokenString, ok := token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		return nil, fmt.Errorf("id token missing from Google token response")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("google id token validation failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("email claim missing from Google id token")
	}
	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = email
	}

	return s.userService.UpsertOAuthUser(ctx, email, name)
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/znapfile/edge-gateway/internal/auth"
	"github.com/znapfile/edge-gateway/internal/config"
	"github.com/znapfile/edge-gateway/internal/domain"
	"github.com/znapfile/edge-gateway/internal/events"
	"github.com/znapfile/edge-gateway/internal/store"
)

// ErrInvalidCredentials is returned when the email/password pair does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidRefreshToken is returned when a refresh token fails validation.
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// TokenPair carries the two tokens issued on login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService coordinates credential checks and token issuance.
type AuthService struct {
	accounts   store.AccountStore
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, accounts store.AccountStore, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		accounts:   accounts,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes, cfg.RefreshTokenTTLMinutes),
		dispatcher: dispatcher,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates the credential pair and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Account, TokenPair, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		s.publish(ctx, events.EventLoginFailed, events.LoginFailedPayload{Email: email})
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		s.publish(ctx, events.EventLoginFailed, events.LoginFailedPayload{Email: email})
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issuePair(account)
	if err != nil {
		return nil, TokenPair{}, err
	}
	s.publish(ctx, events.EventLoginSucceeded, events.LoginSucceededPayload{
		AccountID: account.ID,
		Email:     account.Email,
	})
	return account, pair, nil
}

// Refresh validates a refresh token and rotates the pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.Account, TokenPair, error) {
	claims, err := s.tokenMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != auth.TokenTypeRefresh {
		return nil, TokenPair{}, ErrInvalidRefreshToken
	}

	account, err := s.accounts.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidRefreshToken
	}

	pair, err := s.issuePair(account)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return account, pair, nil
}

func (s *AuthService) issuePair(account *domain.Account) (TokenPair, error) {
	access, _, err := s.tokenMgr.GenerateToken(account.ID, account.Email, account.Plan, auth.TokenTypeAccess)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, _, err := s.tokenMgr.GenerateToken(account.ID, account.Email, account.Plan, auth.TokenTypeRefresh)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tweetpilot/internal/models"
	"tweetpilot/internal/repository"
	"tweetpilot/internal/statestore"
	"tweetpilot/internal/twitter"
)

// OAuthClient is the slice of the Twitter client the login flow needs.
type OAuthClient interface {
	AuthLink(state, codeVerifier string) string
	Login(ctx context.Context, code, codeVerifier string) (*twitter.TokenPair, error)
	Me(ctx context.Context, accessToken string) (string, error)
}

// UserService handles Twitter account linking and session tokens.
type UserService struct {
	users     *repository.UserRepository
	states    statestore.Store
	oauth     OAuthClient
	jwtSecret []byte
	jwtExpiry time.Duration
	logger    *zap.Logger
}

// NewUserService creates a user service.
func NewUserService(
	users *repository.UserRepository,
	states statestore.Store,
	oauth OAuthClient,
	jwtSecret string,
	jwtExpiry time.Duration,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		users:     users,
		states:    states,
		oauth:     oauth,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: jwtExpiry,
		logger:    logger,
	}
}

// LoginURL starts an OAuth2 PKCE login: the state and code verifier are
// parked in the state store until the callback arrives.
func (s *UserService) LoginURL(ctx context.Context) (string, error) {
	state := uuid.NewString()
	codeVerifier, err := twitter.NewCodeVerifier()
	if err != nil {
		return "", err
	}

	if err := s.states.Put(ctx, state, codeVerifier); err != nil {
		return "", fmt.Errorf("storing login state: %w", err)
	}

	return s.oauth.AuthLink(state, codeVerifier), nil
}

// LoginCallback finishes the OAuth2 login: exchanges the code, resolves
// the Twitter account id, upserts the user and returns a signed session
// token carrying the local user id.
func (s *UserService) LoginCallback(ctx context.Context, code, state string) (string, error) {
	if code == "" || state == "" {
		return "", ErrInvalidLogin
	}

	codeVerifier, err := s.states.Get(ctx, state)
	if err != nil {
		return "", err
	}

	pair, err := s.oauth.Login(ctx, code, codeVerifier)
	if err != nil {
		return "", fmt.Errorf("twitter login: %w", err)
	}

	accountID, err := s.oauth.Me(ctx, pair.AccessToken)
	if err != nil {
		return "", fmt.Errorf("resolving twitter account: %w", err)
	}

	user, err := s.users.SaveByAccountID(&models.User{
		AccountID:    accountID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
	if err != nil {
		return "", fmt.Errorf("saving user: %w", err)
	}
	s.logger.Info("User logged in", zap.Uint("user_id", user.ID), zap.String("account_id", accountID))

	if err := s.states.Delete(ctx, state); err != nil {
		s.logger.Warn("Failed to delete login state", zap.Error(err))
	}

	return s.signToken(user.ID)
}

// Validate confirms the user still exists and returns it.
func (s *UserService) Validate(userID uint) (*models.User, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) signToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": jwt.NewNumericDate(time.Now().Add(s.jwtExpiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

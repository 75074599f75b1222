package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"kitchen-guide/internal/auth"
	"kitchen-guide/internal/model"
	"kitchen-guide/internal/repository"
)

// authService implements AuthService.
type authService struct {
	userRepo repository.UserRepository
	issuer   *auth.TokenIssuer
	logger   zerolog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, issuer *auth.TokenIssuer, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		issuer:   issuer,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Register validates the form, hashes the password, and creates the account.
func (s *authService) Register(ctx context.Context, form *model.RegisterForm) (*model.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, form.Username, form.Email, hash)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", form.Username).Msg("failed to register user")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Str("username", user.Username).
		Msg("user registered")

	return user, nil
}

// Login verifies the credentials and issues a signed token. All failure
// paths return the same generic error so the response never reveals
// whether the username or the password was wrong.
func (s *authService) Login(ctx context.Context, form *model.LoginForm) (string, *model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, form.Username)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up user for login")
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil || !auth.VerifyPassword(form.Password, user.PasswordHash) {
		s.logger.Warn().Str("username", form.Username).Msg("login failed")
		return "", nil, model.ErrAuthenticationFailed
	}

	token, err := s.issuer.Issue(user.ID, user.Username)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to issue token")
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user logged in")

	return token, user, nil
}

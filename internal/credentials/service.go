package credentials

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Service provides login, account creation, and password management.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

// NewService creates a new credential service.
func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Login verifies a username/password pair. A wrong password is not an error:
// it returns (false, nil). An unknown username returns ErrUserNotFound.
func (s *Service) Login(ctx context.Context, username, password string) (bool, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("login lookup failed")
		return false, err
	}

	if !verifyPassword(password, user.Salt, user.HashedPassword) {
		s.logger.Info().Str("username", username).Msg("incorrect password")
		return false, nil
	}

	s.logger.Info().Str("username", username).Msg("user logged in")
	return true, nil
}

// Create stores a new user with a fresh random salt.
func (s *Service) Create(ctx context.Context, username, password string) error {
	salt, err := generateSalt()
	if err != nil {
		return err
	}

	user := &User{
		Username:       username,
		Salt:           salt,
		HashedPassword: hashPassword(password, salt),
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("create user failed")
		return err
	}

	s.logger.Info().Str("username", username).Msg("user created")
	return nil
}

// UpdatePassword replaces the stored hash for an existing user. The stored
// salt is reused rather than rotated.
// TODO: generate a fresh salt here instead of reusing the original one.
func (s *Service) UpdatePassword(ctx context.Context, username, password string) error {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("password update lookup failed")
		return err
	}

	hash := hashPassword(password, user.Salt)
	if err := s.repo.UpdateHash(ctx, username, hash); err != nil {
		return fmt.Errorf("update password for %s: %w", username, err)
	}

	s.logger.Info().Str("username", username).Msg("password updated")
	return nil
}

// ClearAll destroys the whole credential store, deleting every user.
func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.repo.Reset(ctx); err != nil {
		return err
	}
	s.logger.Warn().Msg("credential store cleared")
	return nil
}

package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cashflow/payments-api/internal/core"
	"github.com/cashflow/payments-api/internal/port/input"
	"github.com/cashflow/payments-api/internal/port/output"
)

// Unknown username and wrong password produce this exact message, so a caller
// cannot tell which one occurred.
const invalidCredentialsMessage = "Wrong username or password"

// UserServiceImpl implements the UserService input port
type UserServiceImpl struct {
	userRepo output.UserRepository
	hasher   output.PasswordHasher
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo output.UserRepository,
	hasher output.PasswordHasher,
	logger *zap.Logger,
) input.UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

// GetUser retrieves a user by username
func (s *UserServiceImpl) GetUser(ctx context.Context, username string) input.GetUserResult {
	user, found, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Error("finding user failed", zap.String("username", username), zap.Error(err))
		return input.UnexpectedError{Message: "failed to find user"}
	}
	if !found {
		return input.UserNotFoundError{
			Message: fmt.Sprintf("Could not find user with username: %s", username),
		}
	}
	return input.GetUserSuccess{User: *user}
}

// ValidateUserPassword verifies a plaintext password against the stored hash.
// The plaintext is never persisted or logged.
func (s *UserServiceImpl) ValidateUserPassword(ctx context.Context, username, plaintext string) input.ValidateUserPasswordResult {
	user, found, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Error("finding user failed", zap.String("username", username), zap.Error(err))
		return input.UnexpectedError{Message: "failed to validate password"}
	}
	// A missing user and a wrong password collapse into the same variant and
	// message to prevent username enumeration.
	if !found || !s.hasher.Verify(user.PasswordHash, plaintext) {
		return input.UserPasswordInvalidError{Message: invalidCredentialsMessage}
	}
	return input.ValidateUserPasswordSuccess{}
}

// AddUser provisions a user with a hashed password if the username is free.
// Used by the seed command and tests only.
func (s *UserServiceImpl) AddUser(ctx context.Context, username, plaintext string) input.AddUserResult {
	_, found, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Error("finding user failed", zap.String("username", username), zap.Error(err))
		return input.UnexpectedError{Message: "failed to add user"}
	}
	if found {
		s.logger.Info("user already exists", zap.String("username", username))
		return input.AddUserSuccess{Created: false}
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		s.logger.Error("hashing password failed", zap.String("username", username), zap.Error(err))
		return input.UnexpectedError{Message: "failed to add user"}
	}

	user := &core.User{Username: username, PasswordHash: hash}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("creating user failed", zap.String("username", username), zap.Error(err))
		return input.UnexpectedError{Message: "failed to add user"}
	}

	s.logger.Info("created user", zap.String("username", username))
	return input.AddUserSuccess{Created: true}
}

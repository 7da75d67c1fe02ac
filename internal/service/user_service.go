package service

import (
	"context"

	"github.com/spec-kit/movie-service/internal/auth"
	"github.com/spec-kit/movie-service/internal/domain"
	"github.com/spec-kit/movie-service/internal/repository"
	apperrors "github.com/spec-kit/movie-service/pkg/util"
)

// UserService handles account reads and self-service updates.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// UserByID returns an account.
func (s *UserService) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateName changes the display name.
func (s *UserService) UpdateName(ctx context.Context, userID int64, name string) error {
	return s.users.UpdateName(ctx, userID, name)
}

// UpdatePassword verifies the current password before storing the new hash.
func (s *UserService) UpdatePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.HasPassword() {
		return apperrors.NewUnauthorized("password login unavailable for this account")
	}
	if err := auth.ComparePassword(user.PasswordHash, oldPassword); err != nil {
		return apperrors.NewUnauthorized("invalid password")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// Withdraw soft-deletes the account after a password confirmation.
func (s *UserService) Withdraw(ctx context.Context, userID int64, password string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.HasPassword() {
		if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
			return apperrors.NewUnauthorized("invalid password")
		}
	}
	return s.users.SoftDelete(ctx, userID)
}

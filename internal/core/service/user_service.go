package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/martijn/usersvc/internal/core/domain"
	"github.com/martijn/usersvc/internal/core/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	BcryptCost = 10

	MsgEmailInUse      = "Email already in use"
	MsgUserNotFound    = "User not found"
	MsgPasswordTooLong = "Password must be at most 72 bytes"
)

type UserService struct {
	userRepo      repository.UserRepository
	hashPasswords bool
}

func NewUserService(userRepo repository.UserRepository, hashPasswords bool) *UserService {
	return &UserService{
		userRepo:      userRepo,
		hashPasswords: hashPasswords,
	}
}

// Create validates the payload, rejects an email that is already taken and
// inserts the record.
func (s *UserService) Create(ctx context.Context, in UserInput) (*domain.User, error) {
	fields, err := ValidateUserInput(in)
	if err != nil {
		return nil, err
	}

	if err := s.checkEmailAvailable(ctx, fields.Email, ""); err != nil {
		return nil, err
	}

	if fields.Password, err = s.preparePassword(fields.Password); err != nil {
		return nil, err
	}

	user := domain.NewUser(fields)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// List returns every record; never nil.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewNotFoundError(MsgUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return user, nil
}

// Update replaces all four business fields of the record with the given id.
// The email may stay the same but must not belong to another record.
func (s *UserService) Update(ctx context.Context, id string, in UserInput) (*domain.User, error) {
	fields, err := ValidateUserInput(in)
	if err != nil {
		return nil, err
	}

	if err := s.checkEmailAvailable(ctx, fields.Email, id); err != nil {
		return nil, err
	}

	if fields.Password, err = s.preparePassword(fields.Password); err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateByID(ctx, id, fields)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewNotFoundError(MsgUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	return user, nil
}

// Delete removes the record if it exists. Deleting an unknown id is not an error.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.userRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}

// Clear removes every record and reports how many were deleted.
func (s *UserService) Clear(ctx context.Context) (int64, error) {
	n, err := s.userRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear users: %w", err)
	}
	return n, nil
}

// checkEmailAvailable fails with a conflict when another record holds email.
// excludeID is the record being updated, empty on create.
func (s *UserService) checkEmailAvailable(ctx context.Context, email, excludeID string) error {
	_, err := s.userRepo.FindOne(ctx, repository.UserFilter{Email: email, ExcludeID: excludeID})
	if err == nil {
		return domain.NewConflictError(MsgEmailInUse)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("check email: %w", err)
}

func (s *UserService) preparePassword(password string) (string, error) {
	if !s.hashPasswords {
		return password, nil
	}
	return HashPassword(password)
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.NewValidationError(MsgPasswordTooLong)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a hash
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

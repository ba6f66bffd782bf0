package repository

import (
	"context"

	"github.com/martijn/usersvc/internal/core/domain"
)

// UserFilter selects records by field equality. Empty fields are ignored.
type UserFilter struct {
	Email string
	// ExcludeID drops the record with this id from the match.
	ExcludeID string
}

// UserRepository is the record store. Lookups that match nothing return
// domain.ErrNotFound.
type UserRepository interface {
	FindOne(ctx context.Context, filter UserFilter) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	// UpdateByID replaces the business fields and returns the stored result.
	UpdateByID(ctx context.Context, id string, fields domain.UserFields) (*domain.User, error)
	// DeleteByID succeeds whether or not the record exists.
	DeleteByID(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

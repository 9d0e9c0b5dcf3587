package repository

import (
	"context"

	"github.com/userboard/userboard/internal/domain/entity"
)

// UserRepository defines the interface for the persisted user store.
type UserRepository interface {
	// UpsertAll replaces whole rows keyed by ID (insert-or-replace) in one
	// transaction. Rows absent from users are left untouched.
	UpsertAll(ctx context.Context, users []entity.User) error
	// ReadAll returns every stored row in the store's natural order.
	ReadAll(ctx context.Context) ([]entity.User, error)
}

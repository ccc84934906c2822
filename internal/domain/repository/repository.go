package repository

import (
	"context"
	"errors"

	"github.com/jortega/storefront/internal/domain/entity"
)

// Sentinel errors shared by all repositories. Anything else coming out
// of a repository is an infrastructure failure and must not reach the
// client verbatim.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// UserRepository defines the credential store. Email uniqueness is
// enforced by the store itself; Create returns ErrDuplicate when the
// insert loses that race.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}

// ProductRepository defines catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
}

// InventoryRepository defines inventory persistence.
type InventoryRepository interface {
	Create(ctx context.Context, it *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	List(ctx context.Context) ([]entity.InventoryItem, error)
	Update(ctx context.Context, it *entity.InventoryItem) error
	Delete(ctx context.Context, id string) error
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/elbaul-api/internal/domain/entity"
)

// CartRepository puerto de persistencia para Cart.
type CartRepository interface {
	Create(ctx context.Context, cart *entity.Cart) error
	GetByID(ctx context.Context, id string) (*entity.Cart, error)
	GetActiveByUser(ctx context.Context, userID string) (*entity.Cart, error)
	// LockActiveByUser igual que GetActiveByUser pero bloquea la fila hasta el fin de la transacción.
	LockActiveByUser(ctx context.Context, userID string) (*entity.Cart, error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
}

// CartItemRepository puerto de persistencia para CartItem.
type CartItemRepository interface {
	Create(ctx context.Context, item *entity.CartItem) error
	Update(ctx context.Context, item *entity.CartItem) error
	GetByID(ctx context.Context, id string) (*entity.CartItem, error)
	GetByCartAndProduct(ctx context.Context, cartID, productID string) (*entity.CartItem, error)
	ListByCart(ctx context.Context, cartID string) ([]*entity.CartItem, error)
	ListDetailsByCart(ctx context.Context, cartID string) ([]*entity.CartItemDetail, error)
	Delete(ctx context.Context, id string) error
	DeleteByCart(ctx context.Context, cartID string) error
}

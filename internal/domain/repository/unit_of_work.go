package repository

import "context"

// Repos agrupa los repositorios atados a una misma conexión o transacción.
type Repos struct {
	Users      UserRepository
	Categories CategoryRepository
	Products   ProductRepository
	Inventory  InventoryRepository
	Sequences  SequenceRepository
	Carts      CartRepository
	CartItems  CartItemRepository
	Orders     OrderRepository
	OrderLines OrderLineRepository
	Payments   PaymentRepository
	Shipments  ShipmentRepository
	Returns    ReturnRepository
	Favorites  FavoriteRepository
	Reviews    ReviewRepository
	Posts      PostRepository
	Comments   CommentRepository
	Reactions  ReactionRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback de todo lo escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

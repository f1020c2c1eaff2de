package repository

import "context"

// Repositories bound to one transaction.
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Carts() CartRepository
	CartItems() CartItemRepository
	Inventory() InventoryRepository
	Products() ProductRepository
	Payments() PaymentRepository
}

// Hides begin/commit/rollback from the usecases. fn returning an error
// rolls the whole unit back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}

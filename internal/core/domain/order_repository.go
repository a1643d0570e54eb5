package domain

import "context"

// OrderRepository is the abstraction for any kind of database intended to
// persist Orders. Orders are never deleted: terminal ones stay stored and
// the per-seller and per-item indices are append-only historical records.
type OrderRepository interface {
	// AddOrder persists a new order and appends its key to the seller and
	// item indices. It fails with ErrOrderAlreadyExists when a live order
	// occupies the same key.
	AddOrder(ctx context.Context, order *Order) error
	// GetOrder returns the order with the given key, or ErrOrderNotFound.
	GetOrder(ctx context.Context, key string) (*Order, error)
	// GetAllOrders returns every order stored in the repository.
	GetAllOrders(ctx context.Context) ([]*Order, error)
	// UpdateOrder allows to commit multiple changes to the same order in a
	// transactional way: the order is persisted in the state returned by
	// updateFn, or left untouched if updateFn errors.
	UpdateOrder(
		ctx context.Context,
		key string,
		updateFn func(o *Order) (*Order, error),
	) error
	// GetSellerOrderKeys returns the keys of every order ever created by the
	// seller, in creation sequence.
	GetSellerOrderKeys(ctx context.Context, seller Identity) ([]string, error)
	// GetItemOrderKeys returns the keys of every order ever created for the
	// item, in creation sequence.
	GetItemOrderKeys(ctx context.Context, itemContract string, itemID uint64) ([]string, error)
}

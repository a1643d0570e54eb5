package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/nftex-network/nftex-daemon/internal/core/domain"
)

type orderInmemoryStore struct {
	orders   map[string]*domain.Order
	bySeller map[domain.Identity][]string
	byItem   map[string][]string
	locker   *sync.Mutex
}

type orderRepositoryImpl struct {
	store *orderInmemoryStore
}

// NewOrderRepositoryImpl returns a new inmemory OrderRepository
// implementation.
func NewOrderRepositoryImpl() domain.OrderRepository {
	return &orderRepositoryImpl{
		store: &orderInmemoryStore{
			orders:   map[string]*domain.Order{},
			bySeller: map[domain.Identity][]string{},
			byItem:   map[string][]string{},
			locker:   &sync.Mutex{},
		},
	}
}

func (r orderRepositoryImpl) AddOrder(_ context.Context, order *domain.Order) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if existing, ok := r.store.orders[order.Key]; ok && !existing.IsTerminal() {
		return domain.ErrOrderAlreadyExists
	}

	clone := *order
	r.store.orders[order.Key] = &clone
	r.store.bySeller[order.Seller] = append(r.store.bySeller[order.Seller], order.Key)
	itemKey := itemIndexKey(order.ItemContract, order.ItemID)
	r.store.byItem[itemKey] = append(r.store.byItem[itemKey], order.Key)
	return nil
}

func (r orderRepositoryImpl) GetOrder(_ context.Context, key string) (*domain.Order, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getOrder(key)
}

func (r orderRepositoryImpl) GetAllOrders(_ context.Context) ([]*domain.Order, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	orders := make([]*domain.Order, 0, len(r.store.orders))
	for _, order := range r.store.orders {
		clone := *order
		orders = append(orders, &clone)
	}
	return orders, nil
}

func (r orderRepositoryImpl) UpdateOrder(
	_ context.Context,
	key string,
	updateFn func(o *domain.Order) (*domain.Order, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentOrder, err := r.getOrder(key)
	if err != nil {
		return err
	}

	updatedOrder, err := updateFn(currentOrder)
	if err != nil {
		return err
	}

	r.store.orders[key] = updatedOrder
	return nil
}

func (r orderRepositoryImpl) GetSellerOrderKeys(
	_ context.Context, seller domain.Identity,
) ([]string, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	keys := r.store.bySeller[seller]
	return append([]string(nil), keys...), nil
}

func (r orderRepositoryImpl) GetItemOrderKeys(
	_ context.Context, itemContract string, itemID uint64,
) ([]string, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	keys := r.store.byItem[itemIndexKey(itemContract, itemID)]
	return append([]string(nil), keys...), nil
}

func (r orderRepositoryImpl) getOrder(key string) (*domain.Order, error) {
	order, ok := r.store.orders[key]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *order
	return &clone, nil
}

func itemIndexKey(itemContract string, itemID uint64) string {
	return fmt.Sprintf("%s:%d", itemContract, itemID)
}

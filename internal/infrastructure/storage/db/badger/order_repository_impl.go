package dbbadger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/nftex-network/nftex-daemon/internal/core/domain"
)

// sellerIndexEntry is one append-only record of the per-seller order index.
// Entries are never removed, even after the order terminates.
type sellerIndexEntry struct {
	ID       uint64 `badgerhold:"key"`
	Seller   string `badgerholdIndex:"Seller"`
	OrderKey string
}

// itemIndexEntry is one append-only record of the per-item order index.
type itemIndexEntry struct {
	ID       uint64 `badgerhold:"key"`
	Item     string `badgerholdIndex:"Item"`
	OrderKey string
}

type orderRepositoryImpl struct {
	db *repoManager
}

// NewOrderRepositoryImpl returns a badgerhold backed OrderRepository
// implementation.
func NewOrderRepositoryImpl(db *repoManager) domain.OrderRepository {
	return orderRepositoryImpl{db: db}
}

func (r orderRepositoryImpl) AddOrder(_ context.Context, order *domain.Order) error {
	return r.db.store.Badger().Update(func(tx *badger.Txn) error {
		var existing domain.Order
		err := r.db.store.TxGet(tx, order.Key, &existing)
		if err == nil && !existing.IsTerminal() {
			return domain.ErrOrderAlreadyExists
		}
		if err != nil && err != badgerhold.ErrNotFound {
			return fmt.Errorf("reading order: %w", err)
		}

		if err := r.db.store.TxUpsert(tx, order.Key, *order); err != nil {
			return fmt.Errorf("storing order: %w", err)
		}
		if err := r.db.store.TxInsert(tx, badgerhold.NextSequence(), &sellerIndexEntry{
			Seller:   string(order.Seller),
			OrderKey: order.Key,
		}); err != nil {
			return fmt.Errorf("appending seller index: %w", err)
		}
		if err := r.db.store.TxInsert(tx, badgerhold.NextSequence(), &itemIndexEntry{
			Item:     itemIndexKey(order.ItemContract, order.ItemID),
			OrderKey: order.Key,
		}); err != nil {
			return fmt.Errorf("appending item index: %w", err)
		}
		return nil
	})
}

func (r orderRepositoryImpl) GetOrder(_ context.Context, key string) (*domain.Order, error) {
	var order domain.Order
	if err := r.db.store.Get(key, &order); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r orderRepositoryImpl) GetAllOrders(_ context.Context) ([]*domain.Order, error) {
	var list []domain.Order
	if err := r.db.store.Find(&list, nil); err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, 0, len(list))
	for i := range list {
		orders = append(orders, &list[i])
	}
	return orders, nil
}

func (r orderRepositoryImpl) UpdateOrder(
	ctx context.Context,
	key string,
	updateFn func(o *domain.Order) (*domain.Order, error),
) error {
	currentOrder, err := r.GetOrder(ctx, key)
	if err != nil {
		return err
	}

	updatedOrder, err := updateFn(currentOrder)
	if err != nil {
		return err
	}

	return r.db.store.Update(key, *updatedOrder)
}

func (r orderRepositoryImpl) GetSellerOrderKeys(
	_ context.Context, seller domain.Identity,
) ([]string, error) {
	var entries []sellerIndexEntry
	query := badgerhold.Where("Seller").Eq(string(seller)).Index("Seller").SortBy("ID")
	if err := r.db.store.Find(&entries, query); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		keys = append(keys, entry.OrderKey)
	}
	return keys, nil
}

func (r orderRepositoryImpl) GetItemOrderKeys(
	_ context.Context, itemContract string, itemID uint64,
) ([]string, error) {
	var entries []itemIndexEntry
	query := badgerhold.Where("Item").
		Eq(itemIndexKey(itemContract, itemID)).Index("Item").SortBy("ID")
	if err := r.db.store.Find(&entries, query); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		keys = append(keys, entry.OrderKey)
	}
	return keys, nil
}

func itemIndexKey(itemContract string, itemID uint64) string {
	return fmt.Sprintf("%s:%d", itemContract, itemID)
}

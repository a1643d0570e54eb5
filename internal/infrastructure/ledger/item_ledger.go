package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/nftex-network/nftex-daemon/internal/core/domain"
	"github.com/nftex-network/nftex-daemon/internal/core/ports"
)

type itemRef struct {
	contract string
	id       uint64
}

// ItemLedger is an in-process item custody contract: it tracks ownership
// and per-item approvals and enforces transfer authority the same way the
// on-chain custody collaborator would.
type ItemLedger struct {
	lock      sync.Mutex
	owners    map[itemRef]domain.Identity
	approvals map[itemRef]domain.Identity
}

// NewItemLedger returns an empty custody ledger.
func NewItemLedger() *ItemLedger {
	return &ItemLedger{
		owners:    make(map[itemRef]domain.Identity),
		approvals: make(map[itemRef]domain.Identity),
	}
}

// interface guard
var _ ports.ItemCustody = (*ItemLedger)(nil)

// Mint registers a new item under the given owner.
func (l *ItemLedger) Mint(itemContract string, itemID uint64, owner domain.Identity) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	ref := itemRef{itemContract, itemID}
	if _, ok := l.owners[ref]; ok {
		return fmt.Errorf("item %s:%d already minted", itemContract, itemID)
	}
	l.owners[ref] = owner
	return nil
}

// Approve grants spender transfer authority over the item. Only the current
// owner can grant it; the approval is cleared on transfer.
func (l *ItemLedger) Approve(
	itemContract string, itemID uint64, caller, spender domain.Identity,
) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	ref := itemRef{itemContract, itemID}
	if l.owners[ref] != caller {
		return domain.ErrMissingTransferAuthority
	}
	l.approvals[ref] = spender
	return nil
}

func (l *ItemLedger) OwnerOf(
	_ context.Context, itemContract string, itemID uint64,
) (domain.Identity, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	owner, ok := l.owners[itemRef{itemContract, itemID}]
	if !ok {
		return "", fmt.Errorf("item %s:%d does not exist", itemContract, itemID)
	}
	return owner, nil
}

func (l *ItemLedger) Transfer(
	_ context.Context,
	caller domain.Identity,
	itemContract string, itemID uint64,
	from, to domain.Identity,
) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	ref := itemRef{itemContract, itemID}
	owner, ok := l.owners[ref]
	if !ok {
		return fmt.Errorf("item %s:%d does not exist", itemContract, itemID)
	}
	if owner != from {
		return domain.ErrMissingTransferAuthority
	}
	if caller != owner && l.approvals[ref] != caller {
		return domain.ErrMissingTransferAuthority
	}

	l.owners[ref] = to
	delete(l.approvals, ref)
	return nil
}

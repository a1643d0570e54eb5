package ports

import (
	"context"

	"github.com/nftex-network/nftex-daemon/internal/core/domain"
)

// ItemCustody is the capability the marketplace consumes from the contract
// holding the non-fungible items. Transfer must enforce transfer authority:
// the caller has to be the current owner of the item or have been granted
// approval for it, otherwise domain.ErrMissingTransferAuthority is returned
// and nothing moves.
type ItemCustody interface {
	// OwnerOf returns the current owner of the item.
	OwnerOf(ctx context.Context, itemContract string, itemID uint64) (domain.Identity, error)
	// Transfer moves the item from its current owner to the recipient on
	// behalf of caller.
	Transfer(
		ctx context.Context,
		caller domain.Identity,
		itemContract string, itemID uint64,
		from, to domain.Identity,
	) error
}

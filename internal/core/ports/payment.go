package ports

import (
	"context"

	"github.com/nftex-network/nftex-daemon/internal/core/domain"
)

// PaymentRail moves funds between the marketplace escrow and participants.
// A marketplace instance is fixed to exactly one rail for its lifetime; the
// two concrete variants are the native-value rail and the token rail.
type PaymentRail interface {
	// Collect pulls funds from the payer into the marketplace escrow ahead
	// of settlement and returns the amount actually collected. The native
	// rail collects the full tendered amount, while the token rail pulls
	// exactly the price through an authorized transfer, using tendered only
	// as the payer's cap. A failure here is a hard one and must abort the
	// call that triggered it, since no state has been committed yet.
	Collect(ctx context.Context, payer domain.Identity, tendered, price uint64) (uint64, error)
	// Payout delivers funds from the marketplace escrow to the recipient.
	// The boolean reports delivery: false means the recipient refused the
	// funds, which the caller degrades to retention instead of failing, so
	// one uncooperative recipient cannot block settlement for everyone else.
	Payout(ctx context.Context, to domain.Identity, amount uint64) (bool, error)
}

package application

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/nftex-network/nftex-daemon/internal/core/domain"
	"github.com/nftex-network/nftex-daemon/internal/core/ports"
)

// settlementEngine executes the outbound side of a settlement: custody
// release and fee/seller payment split. It is always invoked after the
// order has been committed to its terminal state, so a reentrant call
// triggered by a recipient observes already-settled state.
type settlementEngine struct {
	custody ports.ItemCustody
	payment ports.PaymentRail
	market  domain.Identity

	lock     sync.Mutex
	retained map[domain.Identity]uint64
}

func newSettlementEngine(
	custody ports.ItemCustody, payment ports.PaymentRail,
	market domain.Identity,
) *settlementEngine {
	return &settlementEngine{
		custody:  custody,
		payment:  payment,
		market:   market,
		retained: make(map[domain.Identity]uint64),
	}
}

// releaseItem moves an item out of the marketplace holding account.
func (s *settlementEngine) releaseItem(
	ctx context.Context, itemContract string, itemID uint64, to domain.Identity,
) error {
	return s.custody.Transfer(ctx, s.market, itemContract, itemID, s.market, to)
}

// payOut splits the paid amount between the fee recipient and the seller
// and delivers both shares. It returns the fee share for the settlement
// event.
func (s *settlementEngine) payOut(
	ctx context.Context, amount uint64, seller domain.Identity, fee FeeConfig,
) uint64 {
	feeShare, sellerShare := domain.SplitSettlement(amount, fee.BasisPoints)
	s.deliver(ctx, fee.Recipient, feeShare, "fee share")
	s.deliver(ctx, seller, sellerShare, "seller share")
	return feeShare
}

// deliver pays the recipient out of the marketplace escrow. A refused or
// failed delivery is downgraded to retention: the funds stay with the
// marketplace for manual recovery and the triggering call goes on.
func (s *settlementEngine) deliver(
	ctx context.Context, to domain.Identity, amount uint64, reason string,
) {
	if to.IsZero() || amount == 0 {
		return
	}

	ok, err := s.payment.Payout(ctx, to, amount)
	if err == nil && ok {
		return
	}

	s.lock.Lock()
	s.retained[to] += amount
	s.lock.Unlock()

	log.WithFields(log.Fields{
		"recipient": to,
		"amount":    amount,
		"reason":    reason,
	}).Warn("payment delivery failed, funds retained by the marketplace")
}

// retainedFunds returns the amount retained for the recipient after failed
// deliveries.
func (s *settlementEngine) retainedFunds(to domain.Identity) uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.retained[to]
}

package ledger

import (
	"context"

	"github.com/nftex-network/nftex-daemon/internal/core/domain"
	"github.com/nftex-network/nftex-daemon/internal/core/ports"
)

// NativeRail is the value-bearing payment rail: the payer sends an amount
// alongside the call and the marketplace collects all of it, refunding any
// excess later during settlement.
type NativeRail struct {
	book   *AccountBook
	market domain.Identity
}

// NewNativeRail returns a native-value rail parking escrow under the market
// identity.
func NewNativeRail(book *AccountBook, market domain.Identity) *NativeRail {
	return &NativeRail{book: book, market: market}
}

var _ ports.PaymentRail = (*NativeRail)(nil)

func (r *NativeRail) Collect(
	_ context.Context, payer domain.Identity, tendered, _ uint64,
) (uint64, error) {
	r.book.lock.Lock()
	defer r.book.lock.Unlock()

	if err := r.book.move(payer, r.market, tendered); err != nil {
		return 0, err
	}
	return tendered, nil
}

func (r *NativeRail) Payout(
	_ context.Context, to domain.Identity, amount uint64,
) (bool, error) {
	r.book.lock.Lock()
	defer r.book.lock.Unlock()

	if r.book.refusing[to] {
		return false, nil
	}
	if err := r.book.move(r.market, to, amount); err != nil {
		return false, err
	}
	return true, nil
}

// TokenRail is the fungible-token payment rail: the marketplace pulls
// exactly the price through an authorized transfer, so there is never an
// excess to refund. The tendered amount only caps what the payer accepts
// to pay.
type TokenRail struct {
	book   *AccountBook
	market domain.Identity
}

// NewTokenRail returns a token rail parking escrow under the market
// identity.
func NewTokenRail(book *AccountBook, market domain.Identity) *TokenRail {
	return &TokenRail{book: book, market: market}
}

var _ ports.PaymentRail = (*TokenRail)(nil)

func (r *TokenRail) Collect(
	_ context.Context, payer domain.Identity, tendered, price uint64,
) (uint64, error) {
	r.book.lock.Lock()
	defer r.book.lock.Unlock()

	if tendered < price {
		return 0, ErrInsufficientFunds
	}
	allowance := r.book.allowances[payer][r.market]
	if allowance < price {
		return 0, ErrInsufficientAllowance
	}
	if err := r.book.move(payer, r.market, price); err != nil {
		return 0, err
	}
	r.book.allowances[payer][r.market] = allowance - price
	return price, nil
}

func (r *TokenRail) Payout(
	_ context.Context, to domain.Identity, amount uint64,
) (bool, error) {
	r.book.lock.Lock()
	defer r.book.lock.Unlock()

	if r.book.refusing[to] {
		return false, nil
	}
	if err := r.book.move(r.market, to, amount); err != nil {
		return false, err
	}
	return true, nil
}

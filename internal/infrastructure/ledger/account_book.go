package ledger

import (
	"errors"
	"sync"

	"github.com/nftex-network/nftex-daemon/internal/core/domain"
)

// ErrInsufficientFunds is returned when a payer cannot cover the amount a
// rail has to collect.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInsufficientAllowance is returned by the token rail when the payer
// never authorized the marketplace to pull the price.
var ErrInsufficientAllowance = errors.New("insufficient allowance")

// AccountBook is the in-process fund ledger both payment rails ride on. A
// recipient can be flagged as refusing deliveries, which makes Payout report
// a failed delivery the way an uncooperative on-chain recipient would.
type AccountBook struct {
	lock       sync.Mutex
	balances   map[domain.Identity]uint64
	allowances map[domain.Identity]map[domain.Identity]uint64
	refusing   map[domain.Identity]bool
}

// NewAccountBook returns an empty fund ledger.
func NewAccountBook() *AccountBook {
	return &AccountBook{
		balances:   make(map[domain.Identity]uint64),
		allowances: make(map[domain.Identity]map[domain.Identity]uint64),
		refusing:   make(map[domain.Identity]bool),
	}
}

// Deposit credits the account.
func (b *AccountBook) Deposit(account domain.Identity, amount uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.balances[account] += amount
}

// BalanceOf returns the current balance of the account.
func (b *AccountBook) BalanceOf(account domain.Identity) uint64 {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.balances[account]
}

// Allow authorizes spender to pull up to amount from the account.
func (b *AccountBook) Allow(account, spender domain.Identity, amount uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()

	if b.allowances[account] == nil {
		b.allowances[account] = make(map[domain.Identity]uint64)
	}
	b.allowances[account][spender] = amount
}

// RefusePayments flags the account so that every delivery to it fails.
func (b *AccountBook) RefusePayments(account domain.Identity, refuse bool) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.refusing[account] = refuse
}

func (b *AccountBook) move(from, to domain.Identity, amount uint64) error {
	if b.balances[from] < amount {
		return ErrInsufficientFunds
	}
	b.balances[from] -= amount
	b.balances[to] += amount
	return nil
}

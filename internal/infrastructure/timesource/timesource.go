package timesource

import (
	"sync"
	"time"

	"github.com/nftex-network/nftex-daemon/internal/core/ports"
)

// LedgerClock is a manually advanced time marker. It never goes backward:
// advancing to a marker lower than the current one is ignored. It stands in
// for a ledger-height feed in tests and simulation runs.
type LedgerClock struct {
	lock sync.Mutex
	now  uint64
}

// NewLedgerClock returns a clock starting at the given marker.
func NewLedgerClock(start uint64) *LedgerClock {
	return &LedgerClock{now: start}
}

var _ ports.TimeSource = (*LedgerClock)(nil)

func (c *LedgerClock) Now() uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

// AdvanceTo moves the marker forward to the given value, if greater.
func (c *LedgerClock) AdvanceTo(marker uint64) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if marker > c.now {
		c.now = marker
	}
}

// Tick moves the marker forward by n.
func (c *LedgerClock) Tick(n uint64) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now += n
}

// UnixClock derives the marker from the wall clock as unix seconds, ie. a
// ledger-timestamp style marker for live runs.
type UnixClock struct{}

// NewUnixClock ...
func NewUnixClock() UnixClock {
	return UnixClock{}
}

var _ ports.TimeSource = UnixClock{}

func (UnixClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

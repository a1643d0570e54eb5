package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nftex-network/nftex-daemon/internal/core/domain"
)

func TestCurrentPriceFixedPrice(t *testing.T) {
	t.Parallel()

	o := newTestOrder(t, domain.FixedPrice)

	require.Equal(t, uint64(100), domain.CurrentPrice(o, startTime))
	require.Equal(t, uint64(100), domain.CurrentPrice(o, dueTime-1))
	require.Equal(t, uint64(100), domain.CurrentPrice(o, dueTime+1000))
}

func TestCurrentPriceEnglishAuction(t *testing.T) {
	t.Parallel()

	o := newTestOrder(t, domain.EnglishAuction)
	require.Equal(t, uint64(100), domain.CurrentPrice(o, startTime))

	_, err := o.Bid(bidder, 150, startTime)
	require.NoError(t, err)
	require.Equal(t, uint64(150), domain.CurrentPrice(o, startTime+1))
}

func TestCurrentPriceDutchAuction(t *testing.T) {
	t.Parallel()

	o, err := domain.NewOrder(
		domain.DutchAuction, seller, itemContract, itemID,
		100, 0, 31, 131,
	)
	require.NoError(t, err)

	tests := []struct {
		name          string
		now           uint64
		expectedPrice uint64
	}{
		{"before_start", 10, 100},
		{"at_start", 31, 100},
		{"midway", 81, 50},
		{"truncating_division", 60, 71},
		{"one_before_due", 130, 1},
		{"at_due", 131, 0},
		{"after_due", 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expectedPrice, domain.CurrentPrice(o, tt.now))
		})
	}
}

func TestCurrentPriceDutchAuctionIsMonotone(t *testing.T) {
	t.Parallel()

	o, err := domain.NewOrder(
		domain.DutchAuction, seller, itemContract, itemID,
		1000, 37, 0, 313,
	)
	require.NoError(t, err)

	prev := domain.CurrentPrice(o, 0)
	require.Equal(t, uint64(1000), prev)
	for now := uint64(1); now <= 313; now++ {
		price := domain.CurrentPrice(o, now)
		require.LessOrEqual(t, price, prev)
		require.GreaterOrEqual(t, price, uint64(37))
		prev = price
	}
	require.Equal(t, uint64(37), prev)
}

func TestCurrentPriceSoldOrderIsFrozen(t *testing.T) {
	t.Parallel()

	o, err := domain.NewOrder(
		domain.DutchAuction, seller, itemContract, itemID,
		100, 0, 31, 131,
	)
	require.NoError(t, err)
	require.NoError(t, o.Sell(71))

	// the decay curve no longer applies once sold
	require.Equal(t, uint64(71), domain.CurrentPrice(o, 131))
	require.Equal(t, uint64(71), domain.CurrentPrice(o, 1000))
}

func TestSplitSettlement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		amount         uint64
		basisPoints    uint32
		expectedFee    uint64
		expectedSeller uint64
	}{
		{"five_percent", 40, 500, 2, 38},
		{"rounds_down", 39, 500, 1, 38},
		{"no_fee", 40, 0, 0, 40},
		{"full_fee", 40, 10000, 40, 0},
		{"zero_amount", 0, 500, 0, 0},
		{
			"huge_amount_no_overflow",
			1 << 63, 500,
			461168601842738790, 8762203435012037018,
		},
		{"full_fee_max_amount", math.MaxUint64, 10000, math.MaxUint64, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, sellerShare := domain.SplitSettlement(tt.amount, tt.basisPoints)
			require.Equal(t, tt.expectedFee, fee)
			require.Equal(t, tt.expectedSeller, sellerShare)
			require.Equal(t, tt.amount, fee+sellerShare)
		})
	}
}

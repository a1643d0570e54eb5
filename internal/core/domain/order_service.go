package domain

import "github.com/shopspring/decimal"

// CurrentPrice returns the price of the order at the given time marker.
//
// A fixed price order is constant, an English auction quotes its highest bid
// (or the start price while none exists) and a Dutch auction decays linearly
// from start price to end price across its lifetime, with the division
// truncating toward zero. A sold order quotes the price it settled at.
func CurrentPrice(o *Order, now uint64) uint64 {
	if o.IsSold {
		return o.FinalPrice
	}

	switch o.Category {
	case EnglishAuction:
		if o.HasBid() {
			return o.LastBid
		}
		return o.StartPrice
	case DutchAuction:
		return dutchPrice(o, now)
	default:
		return o.StartPrice
	}
}

func dutchPrice(o *Order, now uint64) uint64 {
	if now <= o.StartTime {
		return o.StartPrice
	}
	if now >= o.DueTime {
		return o.EndPrice
	}

	span := decimal.NewFromInt(int64(o.StartPrice - o.EndPrice)).
		Mul(decimal.NewFromInt(int64(now - o.StartTime)))
	duration := decimal.NewFromInt(int64(o.DueTime - o.StartTime))
	drop, _ := span.QuoRem(duration, 0)

	return o.StartPrice - uint64(drop.IntPart())
}

// SplitSettlement splits the paid amount into the fee share retained by the
// marketplace fee recipient and the remainder owed to the seller. The fee is
// floor(amount * basis points / 10000), so feeShare + sellerShare always
// equals the amount paid.
func SplitSettlement(amount uint64, feeBasisPoints uint32) (feeShare, sellerShare uint64) {
	bp := uint64(feeBasisPoints)
	// quotient/remainder split keeps amounts near the uint64 ceiling from
	// overflowing the multiplication; equals floor(amount*bp/10000)
	feeShare = amount/MaxFeeBasisPoints*bp + amount%MaxFeeBasisPoints*bp/MaxFeeBasisPoints
	sellerShare = amount - feeShare
	return
}

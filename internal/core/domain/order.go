package domain

// Identity is the opaque, comparable id of a marketplace participant. It is
// deliberately decoupled from any account encoding.
type Identity string

// IsZero returns whether the identity is unset.
func (i Identity) IsZero() bool {
	return i == ""
}

// Order is the data structure representing one listing of a single
// non-fungible item under one sale mechanism.
type Order struct {
	Key          string
	Seller       Identity
	ItemContract string
	ItemID       uint64
	Category     OrderCategory
	StartPrice   uint64
	EndPrice     uint64
	StartTime    uint64
	DueTime      uint64
	LastBidder   Identity
	LastBid      uint64
	FinalPrice   uint64
	IsCancelled  bool
	IsSold       bool
}

// NewOrder validates the listing arguments and returns a non-terminal order
// with its key derived from (startTime, itemContract, itemID, seller).
func NewOrder(
	category OrderCategory, seller Identity,
	itemContract string, itemID uint64,
	startPrice, endPrice, startTime, dueTime uint64,
) (*Order, error) {
	if dueTime <= startTime {
		return nil, ErrNonPositiveDuration
	}
	if category == DutchAuction && endPrice > startPrice {
		return nil, ErrEndPriceTooHigh
	}

	return &Order{
		Key:          OrderKey(startTime, itemContract, itemID, seller),
		Seller:       seller,
		ItemContract: itemContract,
		ItemID:       itemID,
		Category:     category,
		StartPrice:   startPrice,
		EndPrice:     endPrice,
		StartTime:    startTime,
		DueTime:      dueTime,
	}, nil
}

// IsTerminal returns whether the order reached a terminal state. Terminal
// orders are immutable and every further mutating call on them fails.
func (o *Order) IsTerminal() bool {
	return o.IsCancelled || o.IsSold
}

// HasBid returns whether at least one bid has been recorded.
func (o *Order) HasBid() bool {
	return !o.LastBidder.IsZero()
}

// Bid records a new highest bid on an English auction and returns whether
// the due time was pushed forward because the bid landed within the trailing
// extension window. The superseded bidder and amount, if any, are left to
// the caller to refund.
func (o *Order) Bid(bidder Identity, amount, now uint64) (bool, error) {
	if o.Category != EnglishAuction {
		return false, ErrBidNotEnglishAuction
	}
	if err := o.statusError(); err != nil {
		return false, err
	}
	if now >= o.DueTime {
		return false, ErrOrderExpired
	}
	if bidder == o.Seller {
		return false, ErrSelfBid
	}
	floor := o.StartPrice
	if o.HasBid() {
		floor = o.LastBid
	}
	if amount <= floor {
		return false, ErrLowBid
	}

	o.LastBidder = bidder
	o.LastBid = amount

	if now+BidExtensionWindow > o.DueTime {
		o.DueTime += BidExtensionAmount
		return true, nil
	}
	return false, nil
}

// Cancel brings the order to the Cancelled terminal state. An English
// auction with a recorded bid can never be cancelled, not even after its
// due time has passed; claiming is the only exit at that point.
func (o *Order) Cancel(caller Identity) error {
	if caller != o.Seller {
		return ErrAccessDenied
	}
	if err := o.statusError(); err != nil {
		return err
	}
	if o.Category == EnglishAuction && o.HasBid() {
		return ErrBiddingExists
	}

	o.IsCancelled = true
	return nil
}

// Claimable checks the preconditions for settling an English auction at the
// given time marker on behalf of caller.
func (o *Order) Claimable(caller Identity, now uint64) error {
	if o.Category != EnglishAuction {
		return ErrClaimNotEnglishAuction
	}
	if err := o.statusError(); err != nil {
		return err
	}
	if now < o.DueTime {
		return ErrOrderNotYetDue
	}
	if caller != o.Seller && caller != o.LastBidder {
		return ErrAccessDenied
	}
	return nil
}

// Purchasable checks the preconditions for an immediate purchase of a fixed
// price or Dutch auction order at the given time marker.
func (o *Order) Purchasable(now uint64) error {
	if o.Category == EnglishAuction {
		return ErrBuyEnglishAuction
	}
	if err := o.statusError(); err != nil {
		return err
	}
	if now >= o.DueTime {
		return ErrOrderExpired
	}
	return nil
}

// Sell brings the order to the Sold terminal state, freezing the price it
// settled at.
func (o *Order) Sell(price uint64) error {
	if err := o.statusError(); err != nil {
		return err
	}
	o.IsSold = true
	o.FinalPrice = price
	return nil
}

func (o *Order) statusError() error {
	if o.IsSold {
		return ErrOrderSold
	}
	if o.IsCancelled {
		return ErrOrderCancelled
	}
	return nil
}

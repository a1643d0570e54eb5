package domain

// OrderCategory discriminates the sale mechanism of an order.
type OrderCategory int

const (
	FixedPrice OrderCategory = iota
	EnglishAuction
	DutchAuction
)

const (
	// MaxFeeBasisPoints is the upper bound for the marketplace fee, ie. 100%.
	MaxFeeBasisPoints = 10000

	// BidExtensionWindow is the number of trailing time markers before the
	// due time within which a bid triggers an auction extension.
	BidExtensionWindow = 20
	// BidExtensionAmount is the number of time markers added to the due time
	// on every qualifying late bid.
	BidExtensionAmount = 20
)

var categoryLabels = map[OrderCategory]string{
	FixedPrice:     "FIXED_PRICE",
	EnglishAuction: "ENGLISH_AUCTION",
	DutchAuction:   "DUTCH_AUCTION",
}

func (c OrderCategory) String() string {
	label, ok := categoryLabels[c]
	if !ok {
		return "UNKNOWN"
	}
	return label
}

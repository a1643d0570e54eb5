package application

import (
	"github.com/nftex-network/nftex-daemon/internal/core/domain"
)

// FeeConfig is the marketplace fee configuration, owned by the facade and
// read by the settlement engine on every settlement.
type FeeConfig struct {
	Recipient   domain.Identity
	BasisPoints uint32
}

// OrderCreatedEvent is published on the ORDER_CREATED topic.
type OrderCreatedEvent struct {
	Key          string          `json:"key"`
	Seller       domain.Identity `json:"seller"`
	ItemContract string          `json:"item_contract"`
	ItemID       uint64          `json:"item_id"`
	Category     string          `json:"category"`
	StartPrice   uint64          `json:"start_price"`
	EndPrice     uint64          `json:"end_price,omitempty"`
	DueTime      uint64          `json:"due_time"`
}

// BidPlacedEvent is published on the BID_PLACED topic.
type BidPlacedEvent struct {
	Key      string          `json:"key"`
	Bidder   domain.Identity `json:"bidder"`
	Amount   uint64          `json:"amount"`
	DueTime  uint64          `json:"due_time"`
	Extended bool            `json:"extended"`
}

// OrderCancelledEvent is published on the ORDER_CANCELLED topic.
type OrderCancelledEvent struct {
	Key string `json:"key"`
}

// OrderSettledEvent is published on the ORDER_SETTLED topic. Buyer is empty
// and Amount zero for an English auction claimed without any bid, where the
// item simply returns to the seller.
type OrderSettledEvent struct {
	Key    string          `json:"key"`
	Buyer  domain.Identity `json:"buyer,omitempty"`
	Amount uint64          `json:"amount"`
	Fee    uint64          `json:"fee"`
}

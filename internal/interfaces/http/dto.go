package http

import "github.com/nftex-network/nftex-daemon/internal/core/domain"

type CreateOrderRequest struct {
	ItemContract string `json:"item_contract" binding:"required"`
	ItemID       uint64 `json:"item_id"`
	StartPrice   uint64 `json:"start_price"`
	EndPrice     uint64 `json:"end_price"`
	DueTime      uint64 `json:"due_time" binding:"required"`
}

type CreateOrderResponse struct {
	Order Order `json:"order"`
}

type BidRequest struct {
	Amount uint64 `json:"amount" binding:"required"`
}

type BuyItNowRequest struct {
	Tendered uint64 `json:"tendered" binding:"required"`
}

type Order struct {
	Key          string `json:"key"`
	Seller       string `json:"seller"`
	ItemContract string `json:"item_contract"`
	ItemID       uint64 `json:"item_id"`
	Category     string `json:"category"`
	StartPrice   uint64 `json:"start_price"`
	EndPrice     uint64 `json:"end_price,omitempty"`
	StartTime    uint64 `json:"start_time"`
	DueTime      uint64 `json:"due_time"`
	LastBidder   string `json:"last_bidder,omitempty"`
	LastBid      uint64 `json:"last_bid,omitempty"`
	FinalPrice   uint64 `json:"final_price,omitempty"`
	IsCancelled  bool   `json:"is_cancelled"`
	IsSold       bool   `json:"is_sold"`
}

type OrdersResponse struct {
	Orders []Order `json:"orders"`
	Length int     `json:"length"`
}

type PriceResponse struct {
	Key   string `json:"key"`
	Price uint64 `json:"price"`
}

type OrderKeysResponse struct {
	Keys   []string `json:"keys"`
	Length int      `json:"length"`
}

type FeeRecipientRequest struct {
	Recipient string `json:"recipient" binding:"required"`
}

type FeePercentRequest struct {
	BasisPoints uint32 `json:"basis_points"`
}

type FeeConfigResponse struct {
	Recipient   string `json:"recipient"`
	BasisPoints uint32 `json:"basis_points"`
}

type RetainedFundsResponse struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

type SubscribeWebhookRequest struct {
	Topic    string `json:"topic" binding:"required"`
	Endpoint string `json:"endpoint" binding:"required"`
	Secret   string `json:"secret"`
}

type SubscribeWebhookResponse struct {
	ID string `json:"id"`
}

func convertOrder(o *domain.Order) Order {
	return Order{
		Key:          o.Key,
		Seller:       string(o.Seller),
		ItemContract: o.ItemContract,
		ItemID:       o.ItemID,
		Category:     o.Category.String(),
		StartPrice:   o.StartPrice,
		EndPrice:     o.EndPrice,
		StartTime:    o.StartTime,
		DueTime:      o.DueTime,
		LastBidder:   string(o.LastBidder),
		LastBid:      o.LastBid,
		FinalPrice:   o.FinalPrice,
		IsCancelled:  o.IsCancelled,
		IsSold:       o.IsSold,
	}
}

package application

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/nftex-network/nftex-daemon/internal/core/domain"
	"github.com/nftex-network/nftex-daemon/internal/core/ports"
)

// MarketplaceService orchestrates the order book: listing under the three
// sale mechanisms, bidding, cancellation and settlement, plus the owner-only
// fee administration.
type MarketplaceService interface {
	FixedPrice(
		ctx context.Context, seller domain.Identity,
		itemContract string, itemID, price, dueTime uint64,
	) (*domain.Order, error)
	EnglishAuction(
		ctx context.Context, seller domain.Identity,
		itemContract string, itemID, startPrice, dueTime uint64,
	) (*domain.Order, error)
	DutchAuction(
		ctx context.Context, seller domain.Identity,
		itemContract string, itemID, startPrice, endPrice, dueTime uint64,
	) (*domain.Order, error)
	Bid(ctx context.Context, bidder domain.Identity, key string, amount uint64) error
	CancelOrder(ctx context.Context, caller domain.Identity, key string) error
	Claim(ctx context.Context, caller domain.Identity, key string) error
	BuyItNow(ctx context.Context, buyer domain.Identity, key string, tendered uint64) error

	GetOrder(ctx context.Context, key string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	GetCurrentPrice(ctx context.Context, key string) (uint64, error)
	TokenOrderLength(ctx context.Context, itemContract string, itemID uint64) (int, error)
	SellerOrderLength(ctx context.Context, seller domain.Identity) (int, error)
	GetSellerOrderKeys(ctx context.Context, seller domain.Identity) ([]string, error)
	GetItemOrderKeys(ctx context.Context, itemContract string, itemID uint64) ([]string, error)

	SetFeeRecipient(caller, recipient domain.Identity) error
	UpdateFeePercent(caller domain.Identity, basisPoints uint32) error
	FeeConfig() FeeConfig
	RetainedFunds(recipient domain.Identity) uint64

	SubscribeWebhook(topic, endpoint, secret string) (string, error)
	UnsubscribeWebhook(topic, id string) error
	ListWebhooks(topic string) []Subscription
}

type marketplaceService struct {
	repoManager ports.RepoManager
	custody     ports.ItemCustody
	payment     ports.PaymentRail
	timeSource  ports.TimeSource
	pubsub      PubSubService
	settlement  *settlementEngine

	owner  domain.Identity
	market domain.Identity

	// lock serializes every entry point: each call either completes with all
	// its effects applied or aborts before committing any.
	lock sync.Mutex
	fee  FeeConfig
}

// NewMarketplaceService returns the facade over the given collaborators.
// The market identity is the holding account items and escrowed funds are
// parked under; the fee recipient starts out as the owner, like the fee
// percent must not exceed 100% from the very construction.
func NewMarketplaceService(
	owner, market domain.Identity,
	feeBasisPoints uint32,
	repoManager ports.RepoManager,
	custody ports.ItemCustody,
	payment ports.PaymentRail,
	timeSource ports.TimeSource,
	pubsub PubSubService,
) (MarketplaceService, error) {
	if owner.IsZero() || market.IsZero() {
		return nil, ErrNullOwner
	}
	if repoManager == nil {
		return nil, ErrNullRepoManager
	}
	if custody == nil {
		return nil, ErrNullItemCustody
	}
	if payment == nil {
		return nil, ErrNullPaymentRail
	}
	if timeSource == nil {
		return nil, ErrNullTimeSource
	}
	if feeBasisPoints > domain.MaxFeeBasisPoints {
		return nil, domain.ErrFeeTooHigh
	}

	return &marketplaceService{
		repoManager: repoManager,
		custody:     custody,
		payment:     payment,
		timeSource:  timeSource,
		pubsub:      pubsub,
		settlement:  newSettlementEngine(custody, payment, market),
		owner:       owner,
		market:      market,
		fee:         FeeConfig{Recipient: owner, BasisPoints: feeBasisPoints},
	}, nil
}

func (m *marketplaceService) FixedPrice(
	ctx context.Context, seller domain.Identity,
	itemContract string, itemID, price, dueTime uint64,
) (*domain.Order, error) {
	return m.createOrder(
		ctx, domain.FixedPrice, seller, itemContract, itemID, price, 0, dueTime,
	)
}

func (m *marketplaceService) EnglishAuction(
	ctx context.Context, seller domain.Identity,
	itemContract string, itemID, startPrice, dueTime uint64,
) (*domain.Order, error) {
	return m.createOrder(
		ctx, domain.EnglishAuction, seller, itemContract, itemID, startPrice, 0, dueTime,
	)
}

func (m *marketplaceService) DutchAuction(
	ctx context.Context, seller domain.Identity,
	itemContract string, itemID, startPrice, endPrice, dueTime uint64,
) (*domain.Order, error) {
	return m.createOrder(
		ctx, domain.DutchAuction, seller, itemContract, itemID, startPrice, endPrice, dueTime,
	)
}

func (m *marketplaceService) createOrder(
	ctx context.Context, category domain.OrderCategory, seller domain.Identity,
	itemContract string, itemID, startPrice, endPrice, dueTime uint64,
) (*domain.Order, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	now := m.timeSource.Now()
	order, err := domain.NewOrder(
		category, seller, itemContract, itemID, startPrice, endPrice, now, dueTime,
	)
	if err != nil {
		return nil, err
	}

	if existing, err := m.orderRepo().GetOrder(ctx, order.Key); err == nil {
		if !existing.IsTerminal() {
			return nil, domain.ErrOrderAlreadyExists
		}
	} else if !errors.Is(err, domain.ErrOrderNotFound) {
		return nil, err
	}

	// Taking custody of the item doubles as the transfer-authority check:
	// if the seller never granted it, the whole call aborts here with
	// nothing committed.
	if err := m.custody.Transfer(
		ctx, m.market, itemContract, itemID, seller, m.market,
	); err != nil {
		return nil, err
	}

	if err := m.orderRepo().AddOrder(ctx, order); err != nil {
		// the listing never existed, hand the item back
		if txErr := m.custody.Transfer(
			ctx, m.market, itemContract, itemID, m.market, seller,
		); txErr != nil {
			log.WithError(txErr).WithField("order", order.Key).
				Error("failed to return item after aborted listing")
		}
		return nil, err
	}

	m.publish(TopicOrderCreated, OrderCreatedEvent{
		Key:          order.Key,
		Seller:       seller,
		ItemContract: itemContract,
		ItemID:       itemID,
		Category:     category.String(),
		StartPrice:   startPrice,
		EndPrice:     endPrice,
		DueTime:      dueTime,
	})
	log.WithFields(log.Fields{
		"order":    order.Key,
		"category": category.String(),
		"seller":   seller,
	}).Info("order created")

	return order, nil
}

func (m *marketplaceService) Bid(
	ctx context.Context, bidder domain.Identity, key string, amount uint64,
) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	order, err := m.orderRepo().GetOrder(ctx, key)
	if err != nil {
		return err
	}

	now := m.timeSource.Now()
	prevBidder, prevBid := order.LastBidder, order.LastBid

	// dry-run on a copy so the escrow is only pulled for an acceptable bid
	probe := *order
	if _, err := probe.Bid(bidder, amount, now); err != nil {
		return err
	}

	if _, err := m.payment.Collect(ctx, bidder, amount, amount); err != nil {
		return err
	}

	var extended bool
	var dueTime uint64
	if err := m.orderRepo().UpdateOrder(
		ctx, key, func(o *domain.Order) (*domain.Order, error) {
			ext, err := o.Bid(bidder, amount, now)
			if err != nil {
				return nil, err
			}
			extended = ext
			dueTime = o.DueTime
			return o, nil
		},
	); err != nil {
		m.settlement.deliver(ctx, bidder, amount, "bid escrow rollback")
		return err
	}

	// the superseded bid becomes refundable; a refused refund is retained
	// and never aborts the new bid
	m.settlement.deliver(ctx, prevBidder, prevBid, "superseded bid refund")

	m.publish(TopicBidPlaced, BidPlacedEvent{
		Key:      key,
		Bidder:   bidder,
		Amount:   amount,
		DueTime:  dueTime,
		Extended: extended,
	})
	if extended {
		log.WithFields(log.Fields{"order": key, "due_time": dueTime}).
			Debug("late bid extended the auction")
	}
	return nil
}

func (m *marketplaceService) CancelOrder(
	ctx context.Context, caller domain.Identity, key string,
) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if err := m.orderRepo().UpdateOrder(
		ctx, key, func(o *domain.Order) (*domain.Order, error) {
			if err := o.Cancel(caller); err != nil {
				return nil, err
			}
			return o, nil
		},
	); err != nil {
		return err
	}

	order, err := m.orderRepo().GetOrder(ctx, key)
	if err != nil {
		return err
	}
	if err := m.settlement.releaseItem(
		ctx, order.ItemContract, order.ItemID, order.Seller,
	); err != nil {
		return err
	}

	m.publish(TopicOrderCancelled, OrderCancelledEvent{Key: key})
	log.WithField("order", key).Info("order cancelled")
	return nil
}

func (m *marketplaceService) Claim(
	ctx context.Context, caller domain.Identity, key string,
) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	order, err := m.orderRepo().GetOrder(ctx, key)
	if err != nil {
		return err
	}

	now := m.timeSource.Now()
	if err := order.Claimable(caller, now); err != nil {
		return err
	}

	buyer, amount := order.LastBidder, order.LastBid
	salePrice := domain.CurrentPrice(order, now)

	// commit the terminal state before any outbound transfer so a reentrant
	// call cannot settle the same order twice
	if err := m.orderRepo().UpdateOrder(
		ctx, key, func(o *domain.Order) (*domain.Order, error) {
			if err := o.Claimable(caller, now); err != nil {
				return nil, err
			}
			if err := o.Sell(salePrice); err != nil {
				return nil, err
			}
			return o, nil
		},
	); err != nil {
		return err
	}

	if buyer.IsZero() {
		// no bid was ever placed: the item goes back to the seller and no
		// payment moves
		if err := m.settlement.releaseItem(
			ctx, order.ItemContract, order.ItemID, order.Seller,
		); err != nil {
			return err
		}
		m.publish(TopicOrderSettled, OrderSettledEvent{Key: key})
		log.WithField("order", key).Info("auction closed without bids")
		return nil
	}

	if err := m.settlement.releaseItem(
		ctx, order.ItemContract, order.ItemID, buyer,
	); err != nil {
		return err
	}
	fee := m.settlement.payOut(ctx, amount, order.Seller, m.fee)

	m.publish(TopicOrderSettled, OrderSettledEvent{
		Key:    key,
		Buyer:  buyer,
		Amount: amount,
		Fee:    fee,
	})
	log.WithFields(log.Fields{
		"order":  key,
		"buyer":  buyer,
		"amount": amount,
		"fee":    fee,
	}).Info("auction claimed")
	return nil
}

func (m *marketplaceService) BuyItNow(
	ctx context.Context, buyer domain.Identity, key string, tendered uint64,
) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	order, err := m.orderRepo().GetOrder(ctx, key)
	if err != nil {
		return err
	}

	now := m.timeSource.Now()
	if err := order.Purchasable(now); err != nil {
		return err
	}

	price := domain.CurrentPrice(order, now)
	if tendered < price {
		return domain.ErrLowTender
	}

	collected, err := m.payment.Collect(ctx, buyer, tendered, price)
	if err != nil {
		return err
	}

	if err := m.orderRepo().UpdateOrder(
		ctx, key, func(o *domain.Order) (*domain.Order, error) {
			if err := o.Purchasable(now); err != nil {
				return nil, err
			}
			if err := o.Sell(price); err != nil {
				return nil, err
			}
			return o, nil
		},
	); err != nil {
		m.settlement.deliver(ctx, buyer, collected, "purchase rollback")
		return err
	}

	if err := m.settlement.releaseItem(
		ctx, order.ItemContract, order.ItemID, buyer,
	); err != nil {
		return err
	}
	fee := m.settlement.payOut(ctx, price, order.Seller, m.fee)
	if collected > price {
		m.settlement.deliver(ctx, buyer, collected-price, "overpayment refund")
	}

	m.publish(TopicOrderSettled, OrderSettledEvent{
		Key:    key,
		Buyer:  buyer,
		Amount: price,
		Fee:    fee,
	})
	log.WithFields(log.Fields{
		"order":  key,
		"buyer":  buyer,
		"amount": price,
		"fee":    fee,
	}).Info("order bought")
	return nil
}

func (m *marketplaceService) GetOrder(
	ctx context.Context, key string,
) (*domain.Order, error) {
	return m.orderRepo().GetOrder(ctx, key)
}

func (m *marketplaceService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return m.orderRepo().GetAllOrders(ctx)
}

func (m *marketplaceService) GetCurrentPrice(
	ctx context.Context, key string,
) (uint64, error) {
	order, err := m.orderRepo().GetOrder(ctx, key)
	if err != nil {
		return 0, err
	}
	return domain.CurrentPrice(order, m.timeSource.Now()), nil
}

func (m *marketplaceService) TokenOrderLength(
	ctx context.Context, itemContract string, itemID uint64,
) (int, error) {
	keys, err := m.orderRepo().GetItemOrderKeys(ctx, itemContract, itemID)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (m *marketplaceService) SellerOrderLength(
	ctx context.Context, seller domain.Identity,
) (int, error) {
	keys, err := m.orderRepo().GetSellerOrderKeys(ctx, seller)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (m *marketplaceService) GetSellerOrderKeys(
	ctx context.Context, seller domain.Identity,
) ([]string, error) {
	return m.orderRepo().GetSellerOrderKeys(ctx, seller)
}

func (m *marketplaceService) GetItemOrderKeys(
	ctx context.Context, itemContract string, itemID uint64,
) ([]string, error) {
	return m.orderRepo().GetItemOrderKeys(ctx, itemContract, itemID)
}

func (m *marketplaceService) SetFeeRecipient(caller, recipient domain.Identity) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if caller != m.owner {
		return domain.ErrNotOwner
	}
	m.fee.Recipient = recipient
	log.WithField("recipient", recipient).Info("fee recipient updated")
	return nil
}

func (m *marketplaceService) UpdateFeePercent(
	caller domain.Identity, basisPoints uint32,
) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if caller != m.owner {
		return domain.ErrNotOwner
	}
	if basisPoints > domain.MaxFeeBasisPoints {
		return domain.ErrFeeTooHigh
	}
	m.fee.BasisPoints = basisPoints
	log.WithField("basis_points", basisPoints).Info("fee percent updated")
	return nil
}

func (m *marketplaceService) FeeConfig() FeeConfig {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.fee
}

func (m *marketplaceService) RetainedFunds(recipient domain.Identity) uint64 {
	return m.settlement.retainedFunds(recipient)
}

func (m *marketplaceService) SubscribeWebhook(
	topic, endpoint, secret string,
) (string, error) {
	if m.pubsub == nil {
		return "", ErrNullPubSub
	}
	return m.pubsub.Subscribe(topic, endpoint, secret)
}

func (m *marketplaceService) UnsubscribeWebhook(topic, id string) error {
	if m.pubsub == nil {
		return ErrNullPubSub
	}
	return m.pubsub.Unsubscribe(topic, id)
}

func (m *marketplaceService) ListWebhooks(topic string) []Subscription {
	if m.pubsub == nil {
		return nil
	}
	return m.pubsub.ListSubscriptionsForTopic(topic)
}

func (m *marketplaceService) orderRepo() domain.OrderRepository {
	return m.repoManager.OrderRepository()
}

func (m *marketplaceService) publish(topic string, event interface{}) {
	if m.pubsub == nil {
		return
	}
	message, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Warn("failed to serialize event")
		return
	}
	if err := m.pubsub.Publish(topic, string(message)); err != nil {
		log.WithError(err).WithField("topic", topic).
			Warn("failed to publish event")
	}
}

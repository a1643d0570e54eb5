package webhookpubsub

// webhook action types
const (
	OrderCreated WebhookAction = iota
	BidPlaced
	OrderCancelled
	OrderSettled
	AllActions
)

var (
	actionToString = map[WebhookAction]string{
		OrderCreated:   "ORDER_CREATED",
		BidPlaced:      "BID_PLACED",
		OrderCancelled: "ORDER_CANCELLED",
		OrderSettled:   "ORDER_SETTLED",
		AllActions:     "*",
	}
	stringToAction = map[string]WebhookAction{
		"ORDER_CREATED":   OrderCreated,
		"BID_PLACED":      BidPlaced,
		"ORDER_CANCELLED": OrderCancelled,
		"ORDER_SETTLED":   OrderSettled,
		"*":               AllActions,
	}
)

type WebhookAction int

func WebhookActionFromString(actionStr string) (WebhookAction, bool) {
	action, ok := stringToAction[actionStr]
	return action, ok
}

func (wa WebhookAction) String() string {
	actionStr, ok := actionToString[wa]
	if !ok {
		actionStr = "UNKNOWN"
	}
	return actionStr
}

func (wa WebhookAction) Code() int {
	return int(wa)
}

func (wa WebhookAction) Label() string {
	return wa.String()
}

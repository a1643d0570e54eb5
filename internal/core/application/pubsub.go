package application

// Marketplace event topics.
const (
	TopicOrderCreated   = "ORDER_CREATED"
	TopicBidPlaced      = "BID_PLACED"
	TopicOrderCancelled = "ORDER_CANCELLED"
	TopicOrderSettled   = "ORDER_SETTLED"
)

type Topic interface {
	Code() int
	Label() string
}

// Subscription is the info of a client subscribed for a topic.
type Subscription interface {
	Id() string
	Topic() Topic
	NotifyAt() string
}

// PubSubService defines the methods of a pubsub service. All clients
// subscribed for a topic receive every message published for it.
type PubSubService interface {
	// Subscribe subscribes some client for a topic.
	Subscribe(topic string, args ...interface{}) (string, error)
	// Unsubscribe removes some client defined by its id for a topic.
	Unsubscribe(topic, id string) error
	// ListSubscriptionsForTopic returns the info of all clients subscribed
	// for a certain topic.
	ListSubscriptionsForTopic(topic string) []Subscription
	// Publish publishes a message for a certain topic.
	Publish(topic string, message string) error
	// TopicsByLabel returns all the topics supported by the service mapped
	// by their label.
	TopicsByLabel() map[string]Topic
}

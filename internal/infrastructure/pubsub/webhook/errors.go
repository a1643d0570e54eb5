package webhookpubsub

import "errors"

var (
	// ErrUnknownWebhookAction specifies that the given string does not represent
	// any known action.
	ErrUnknownWebhookAction = errors.New("action is unknown")
	// ErrInvalidArgs specifies that the provided args do not properly represent a
	// Webhook.
	ErrInvalidArgs = errors.New(
		"webhook info must be an endpoint and an optional secret",
	)
	// ErrInvalidArgType specifies that the provided arg is not of the expected
	// type.
	ErrInvalidArgType = errors.New("arg type must be string")
	// ErrInvalidTopic is returned whenever attempting to subscribe to an unknown
	// topic.
	ErrInvalidTopic = errors.New("topic is invalid")
)

package application

import "errors"

var (
	// ErrNullRepoManager ...
	ErrNullRepoManager = errors.New("repo manager must not be null")
	// ErrNullItemCustody ...
	ErrNullItemCustody = errors.New("item custody must not be null")
	// ErrNullPaymentRail ...
	ErrNullPaymentRail = errors.New("payment rail must not be null")
	// ErrNullTimeSource ...
	ErrNullTimeSource = errors.New("time source must not be null")
	// ErrNullOwner ...
	ErrNullOwner = errors.New("owner identity must not be null")
	// ErrNullPubSub ...
	ErrNullPubSub = errors.New("pubsub service must not be null")
)

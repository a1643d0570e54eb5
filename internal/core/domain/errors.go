package domain

// ErrorKind classifies the failures surfaced by the marketplace so that
// callers can tell an authorization problem apart from a bad argument or
// from acting on an order in the wrong state.
type ErrorKind int

const (
	AuthorizationError ErrorKind = iota
	ValidationError
	StateError
	NotFoundError
)

// Error is a sentinel marketplace error carrying its kind.
type Error struct {
	kind ErrorKind
	msg  string
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{kind, msg}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Kind() ErrorKind {
	return e.kind
}

var (
	// ErrOrderNotFound ...
	ErrOrderNotFound = newError(NotFoundError, "order does not exist")
	// ErrOrderAlreadyExists is thrown when a live order already occupies the
	// key derived for a new one.
	ErrOrderAlreadyExists = newError(StateError, "order already exists")
	// ErrNotOwner ...
	ErrNotOwner = newError(AuthorizationError, "caller is not the owner")
	// ErrAccessDenied ...
	ErrAccessDenied = newError(AuthorizationError, "access denied")
	// ErrMissingTransferAuthority is thrown when the marketplace cannot move
	// an item because it was never granted transfer authority over it.
	ErrMissingTransferAuthority = newError(AuthorizationError, "transfer caller is not owner nor approved")
	// ErrSelfBid ...
	ErrSelfBid = newError(AuthorizationError, "cannot bid on own order")
	// ErrNonPositiveDuration ...
	ErrNonPositiveDuration = newError(ValidationError, "duration must be positive")
	// ErrEndPriceTooHigh ...
	ErrEndPriceTooHigh = newError(ValidationError, "end price should be lower than start price")
	// ErrFeeTooHigh ...
	ErrFeeTooHigh = newError(ValidationError, "more than 100%")
	// ErrLowBid ...
	ErrLowBid = newError(ValidationError, "low price bid")
	// ErrLowTender ...
	ErrLowTender = newError(ValidationError, "price error")
	// ErrBidNotEnglishAuction ...
	ErrBidNotEnglishAuction = newError(StateError, "only for English Auction")
	// ErrClaimNotEnglishAuction ...
	ErrClaimNotEnglishAuction = newError(StateError, "this function is for English Auction")
	// ErrBuyEnglishAuction ...
	ErrBuyEnglishAuction = newError(StateError, "it's an English Auction")
	// ErrOrderExpired ...
	ErrOrderExpired = newError(StateError, "it's over")
	// ErrOrderNotYetDue ...
	ErrOrderNotYetDue = newError(StateError, "not yet")
	// ErrOrderSold ...
	ErrOrderSold = newError(StateError, "already sold")
	// ErrOrderCancelled ...
	ErrOrderCancelled = newError(StateError, "cancelled order")
	// ErrBiddingExists is thrown when cancelling an English auction that has
	// recorded at least one bid, regardless of its due time having passed.
	ErrBiddingExists = newError(StateError, "bidding exists")
)

// KindOf returns the kind of err and whether err is a marketplace error.
func KindOf(err error) (ErrorKind, bool) {
	e, ok := err.(*Error)
	if !ok {
		return 0, false
	}
	return e.kind, true
}

// IsKind returns whether err is a marketplace error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

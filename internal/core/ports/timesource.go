package ports

// TimeSource supplies the external monotonic marker (ledger height or
// ledger timestamp) driving every duration rule of the marketplace. The
// marker never decreases but may stay unchanged across consecutive calls;
// the marketplace never advances it on its own.
type TimeSource interface {
	Now() uint64
}

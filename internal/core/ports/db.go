package ports

import (
	"github.com/nftex-network/nftex-daemon/internal/core/domain"
)

// RepoManager gives access to every repository of the daemon and handles the
// lifecycle of the underlying store.
type RepoManager interface {
	OrderRepository() domain.OrderRepository

	Close()
}

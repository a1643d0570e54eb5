package inmemory

import (
	"github.com/nftex-network/nftex-daemon/internal/core/domain"
	"github.com/nftex-network/nftex-daemon/internal/core/ports"
)

// RepoManager holds the inmemory repositories in a single data structure.
type RepoManager struct {
	orderRepository domain.OrderRepository
}

// NewRepoManager returns a RepoManager backed by volatile memory, handy for
// tests and development runs.
func NewRepoManager() ports.RepoManager {
	return &RepoManager{
		orderRepository: NewOrderRepositoryImpl(),
	}
}

func (d *RepoManager) OrderRepository() domain.OrderRepository {
	return d.orderRepository
}

func (d *RepoManager) Close() {}

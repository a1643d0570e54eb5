package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/nftex-network/nftex-daemon/internal/config"
	"github.com/nftex-network/nftex-daemon/internal/core/application"
	"github.com/nftex-network/nftex-daemon/internal/core/domain"
	"github.com/nftex-network/nftex-daemon/internal/core/ports"
	"github.com/nftex-network/nftex-daemon/internal/infrastructure/ledger"
	webhookpubsub "github.com/nftex-network/nftex-daemon/internal/infrastructure/pubsub/webhook"
	dbbadger "github.com/nftex-network/nftex-daemon/internal/infrastructure/storage/db/badger"
	"github.com/nftex-network/nftex-daemon/internal/infrastructure/storage/db/inmemory"
	"github.com/nftex-network/nftex-daemon/internal/infrastructure/timesource"
	httpinterface "github.com/nftex-network/nftex-daemon/internal/interfaces/http"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
	if err := config.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	repoManager, err := newRepoManager()
	if err != nil {
		log.WithError(err).Fatal("error while opening order store")
	}
	defer repoManager.Close()

	owner := domain.Identity(config.GetString(config.OwnerKey))
	market := domain.Identity(config.GetString(config.MarketIdentityKey))

	items := ledger.NewItemLedger()
	accounts := ledger.NewAccountBook()
	rail := newPaymentRail(accounts, market)

	marketplaceSvc, err := application.NewMarketplaceService(
		owner, market,
		uint32(config.GetInt(config.FeeBasisPointsKey)),
		repoManager,
		items,
		rail,
		timesource.NewUnixClock(),
		webhookpubsub.NewWebhookPubSubService(),
	)
	if err != nil {
		log.WithError(err).Fatal("error while creating marketplace service")
	}
	if recipient := config.GetString(config.FeeRecipientKey); recipient != "" {
		if err := marketplaceSvc.SetFeeRecipient(
			owner, domain.Identity(recipient),
		); err != nil {
			log.WithError(err).Fatal("error while setting fee recipient")
		}
	}

	addr := fmt.Sprintf(":%d", config.GetInt(config.HTTPPortKey))
	server := httpinterface.NewServer(marketplaceSvc, owner)
	go func() {
		if err := server.Run(addr); err != nil {
			log.WithError(err).Fatal("error listening on http interface")
		}
	}()

	log.Debug("daemon started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("error while shutting down http interface")
	}

	log.Debug("exiting")
}

func newRepoManager() (ports.RepoManager, error) {
	if config.GetString(config.DBTypeKey) == config.DBTypeInMemory {
		return inmemory.NewRepoManager(), nil
	}
	return dbbadger.NewRepoManager(config.GetDbDir(), log.New())
}

func newPaymentRail(accounts *ledger.AccountBook, market domain.Identity) ports.PaymentRail {
	if config.GetString(config.PaymentModeKey) == config.PaymentModeToken {
		return ledger.NewTokenRail(accounts, market)
	}
	return ledger.NewNativeRail(accounts, market)
}

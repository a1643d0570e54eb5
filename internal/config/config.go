package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/nftex-network/nftex-daemon/internal/core/domain"
)

const (
	// DatadirKey is the local data directory to store the internal state of
	// the daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the
	// values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// HTTPPortKey is the port where the HTTP interface will listen on
	HTTPPortKey = "HTTP_PORT"
	// PaymentModeKey selects the payment rail of the marketplace instance,
	// fixed for its lifetime
	PaymentModeKey = "PAYMENT_MODE"
	// OwnerKey is the identity allowed to administer the fee configuration
	OwnerKey = "OWNER"
	// MarketIdentityKey is the holding account items and escrowed funds are
	// parked under
	MarketIdentityKey = "MARKET_IDENTITY"
	// FeeBasisPointsKey is the marketplace fee in basis points, [0, 10000]
	FeeBasisPointsKey = "FEE_BASIS_POINTS"
	// FeeRecipientKey is the identity receiving the fee share; defaults to
	// the owner when left empty
	FeeRecipientKey = "FEE_RECIPIENT"

	DBTypeBadger   = "badger"
	DBTypeInMemory = "inmemory"

	PaymentModeNative = "native"
	PaymentModeToken  = "token"

	DbLocation = "db"
)

var vip *viper.Viper

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("NFTEX")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, filepath.Join(".", "nftex-daemon"))
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, DBTypeBadger)
	vip.SetDefault(HTTPPortKey, 9945)
	vip.SetDefault(PaymentModeKey, PaymentModeNative)
	vip.SetDefault(OwnerKey, "owner")
	vip.SetDefault(MarketIdentityKey, "marketplace")
	vip.SetDefault(FeeBasisPointsKey, 500)
}

// GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

// GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

// GetDatadir returns the data directory of the daemon.
func GetDatadir() string {
	return vip.GetString(DatadirKey)
}

// GetDbDir returns the directory of the order store.
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

// Validate checks the configuration before the daemon starts.
func Validate() error {
	switch dbType := GetString(DBTypeKey); dbType {
	case DBTypeBadger, DBTypeInMemory:
	default:
		return fmt.Errorf("unsupported database type %s", dbType)
	}

	switch paymentMode := GetString(PaymentModeKey); paymentMode {
	case PaymentModeNative, PaymentModeToken:
	default:
		return fmt.Errorf("unsupported payment mode %s", paymentMode)
	}

	if bp := GetInt(FeeBasisPointsKey); bp < 0 || bp > domain.MaxFeeBasisPoints {
		return domain.ErrFeeTooHigh
	}

	if GetString(OwnerKey) == "" || GetString(MarketIdentityKey) == "" {
		return fmt.Errorf("owner and market identities must not be empty")
	}

	return nil
}

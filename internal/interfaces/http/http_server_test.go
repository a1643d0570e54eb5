package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nftex-network/nftex-daemon/internal/core/application"
	"github.com/nftex-network/nftex-daemon/internal/core/domain"
	"github.com/nftex-network/nftex-daemon/internal/infrastructure/ledger"
	webhookpubsub "github.com/nftex-network/nftex-daemon/internal/infrastructure/pubsub/webhook"
	"github.com/nftex-network/nftex-daemon/internal/infrastructure/storage/db/inmemory"
	"github.com/nftex-network/nftex-daemon/internal/infrastructure/timesource"
	httpinterface "github.com/nftex-network/nftex-daemon/internal/interfaces/http"
)

const (
	admin  = "admin"
	market = "marketplace"
	alice  = "alice"
	bob    = "bob"
)

type testServer struct {
	*httptest.Server
	items *ledger.ItemLedger
	book  *ledger.AccountBook
	clock *timesource.LedgerClock
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	items := ledger.NewItemLedger()
	book := ledger.NewAccountBook()
	clock := timesource.NewLedgerClock(1000)

	svc, err := application.NewMarketplaceService(
		admin, market, 500,
		inmemory.NewRepoManager(), items,
		ledger.NewNativeRail(book, market), clock,
		webhookpubsub.NewWebhookPubSubService(),
	)
	require.NoError(t, err)

	require.NoError(t, items.Mint("kitties", 7, alice))
	require.NoError(t, items.Approve("kitties", 7, alice, market))
	book.Deposit(bob, 1000)

	server := httptest.NewServer(httpinterface.NewServer(svc, admin).Handler())
	t.Cleanup(server.Close)

	return &testServer{Server: server, items: items, book: book, clock: clock}
}

func (s *testServer) do(
	t *testing.T, method, path, caller string, body interface{},
) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.URL+path, &buf)
	require.NoError(t, err)
	if caller != "" {
		req.Header.Set("X-Identity", caller)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/v1/orders/fixed-price", alice,
		map[string]interface{}{
			"item_contract": "kitties",
			"item_id":       7,
			"start_price":   40,
			"due_time":      1100,
		},
	)
	require.Equal(t, http.StatusOK, status)
	order := body["order"].(map[string]interface{})
	key := order["key"].(string)
	require.NotEmpty(t, key)
	require.Equal(t, "FIXED_PRICE", order["category"])

	status, body = s.do(t, http.MethodGet, "/v1/orders/"+key+"/price", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(40), body["price"])

	status, _ = s.do(t, http.MethodPost, "/v1/orders/"+key+"/buy", bob,
		map[string]interface{}{"tendered": 40},
	)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, uint64(38), s.book.BalanceOf(alice))

	status, body = s.do(t, http.MethodGet, "/v1/orders/"+key, "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["is_sold"])

	status, body = s.do(t, http.MethodGet, "/v1/sellers/"+alice+"/orders", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(1), body["length"])

	status, body = s.do(t, http.MethodGet, "/v1/orders", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(1), body["length"])
	orders := body["orders"].([]interface{})
	require.Equal(t, key, orders[0].(map[string]interface{})["key"])
}

func TestErrorStatusMapping(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	// missing caller identity
	status, _ := s.do(t, http.MethodPost, "/v1/orders/fixed-price", "",
		map[string]interface{}{
			"item_contract": "kitties", "item_id": 7,
			"start_price": 40, "due_time": 1100,
		},
	)
	require.Equal(t, http.StatusBadRequest, status)

	// unknown order
	status, _ = s.do(t, http.MethodGet, "/v1/orders/missing", "", nil)
	require.Equal(t, http.StatusNotFound, status)

	status, body := s.do(t, http.MethodPost, "/v1/orders/fixed-price", alice,
		map[string]interface{}{
			"item_contract": "kitties", "item_id": 7,
			"start_price": 40, "due_time": 1100,
		},
	)
	require.Equal(t, http.StatusOK, status)
	key := body["order"].(map[string]interface{})["key"].(string)

	// wrong caller cancelling
	status, _ = s.do(t, http.MethodPost, "/v1/orders/"+key+"/cancel", bob, nil)
	require.Equal(t, http.StatusForbidden, status)

	// bidding on a non-auction order
	status, body = s.do(t, http.MethodPost, "/v1/orders/"+key+"/bid", bob,
		map[string]interface{}{"amount": 50},
	)
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, domain.ErrBidNotEnglishAuction.Error(), body["error"])
}

func TestFeeAdministrationOverHTTP(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	status, _ := s.do(t, http.MethodPut, "/v1/fees/percent", bob,
		map[string]interface{}{"basis_points": 100},
	)
	require.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, http.MethodPut, "/v1/fees/percent", admin,
		map[string]interface{}{"basis_points": 100},
	)
	require.Equal(t, http.StatusOK, status)

	status, body := s.do(t, http.MethodGet, "/v1/fees", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(100), body["basis_points"])
	require.Equal(t, admin, body["recipient"])
}

func TestWebhookRegistrationOverHTTP(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	status, _ := s.do(t, http.MethodPost, "/v1/webhooks", bob,
		map[string]interface{}{
			"topic":    application.TopicOrderSettled,
			"endpoint": "http://localhost:8888/hook",
		},
	)
	require.Equal(t, http.StatusForbidden, status)

	status, body := s.do(t, http.MethodPost, "/v1/webhooks", admin,
		map[string]interface{}{
			"topic":    application.TopicOrderSettled,
			"endpoint": "http://localhost:8888/hook",
		},
	)
	require.Equal(t, http.StatusOK, status)
	id := body["id"].(string)
	require.NotEmpty(t, id)

	status, _ = s.do(
		t, http.MethodDelete,
		"/v1/webhooks/"+application.TopicOrderSettled+"/"+id, admin, nil,
	)
	require.Equal(t, http.StatusOK, status)
}

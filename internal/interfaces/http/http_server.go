package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/nftex-network/nftex-daemon/internal/core/application"
	"github.com/nftex-network/nftex-daemon/internal/core/domain"
)

// callerHeader carries the identity acting in the request. The daemon trusts
// it as-is; authentication belongs to whatever sits in front of this server.
const callerHeader = "X-Identity"

type Server struct {
	svc   application.MarketplaceService
	owner domain.Identity

	srv *http.Server
}

func NewServer(
	svc application.MarketplaceService, owner domain.Identity,
) *Server {
	return &Server{svc: svc, owner: owner}
}

// Handler builds the route table. Exposed apart from Run so the routes can
// be exercised without binding a listener.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/v1")
	v1.POST("/orders/fixed-price", s.fixedPrice)
	v1.POST("/orders/english-auction", s.englishAuction)
	v1.POST("/orders/dutch-auction", s.dutchAuction)
	v1.POST("/orders/:key/bid", s.bid)
	v1.POST("/orders/:key/cancel", s.cancelOrder)
	v1.POST("/orders/:key/claim", s.claim)
	v1.POST("/orders/:key/buy", s.buyItNow)
	v1.GET("/orders", s.listOrders)
	v1.GET("/orders/:key", s.getOrder)
	v1.GET("/orders/:key/price", s.getCurrentPrice)
	v1.GET("/sellers/:seller/orders", s.getSellerOrders)
	v1.GET("/items/:contract/:id/orders", s.getItemOrders)
	v1.GET("/fees", s.getFeeConfig)
	v1.PUT("/fees/recipient", s.setFeeRecipient)
	v1.PUT("/fees/percent", s.updateFeePercent)
	v1.GET("/retained/:identity", s.getRetainedFunds)
	v1.POST("/webhooks", s.subscribeWebhook)
	v1.DELETE("/webhooks/:topic/:id", s.unsubscribeWebhook)

	return r
}

func (s *Server) Run(addr string) error {
	s.srv = &http.Server{Addr: addr, Handler: s.Handler()}
	log.WithField("addr", addr).Info("http interface started")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) fixedPrice(c *gin.Context) {
	caller, ok := caller(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := s.svc.FixedPrice(
		c.Request.Context(), caller, req.ItemContract, req.ItemID,
		req.StartPrice, req.DueTime,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, CreateOrderResponse{Order: convertOrder(order)})
}

func (s *Server) englishAuction(c *gin.Context) {
	caller, ok := caller(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := s.svc.EnglishAuction(
		c.Request.Context(), caller, req.ItemContract, req.ItemID,
		req.StartPrice, req.DueTime,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, CreateOrderResponse{Order: convertOrder(order)})
}

func (s *Server) dutchAuction(c *gin.Context) {
	caller, ok := caller(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := s.svc.DutchAuction(
		c.Request.Context(), caller, req.ItemContract, req.ItemID,
		req.StartPrice, req.EndPrice, req.DueTime,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, CreateOrderResponse{Order: convertOrder(order)})
}

func (s *Server) bid(c *gin.Context) {
	caller, ok := caller(c)
	if !ok {
		return
	}
	var req BidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.svc.Bid(
		c.Request.Context(), caller, c.Param("key"), req.Amount,
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) cancelOrder(c *gin.Context) {
	caller, ok := caller(c)
	if !ok {
		return
	}
	if err := s.svc.CancelOrder(
		c.Request.Context(), caller, c.Param("key"),
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) claim(c *gin.Context) {
	caller, ok := caller(c)
	if !ok {
		return
	}
	if err := s.svc.Claim(
		c.Request.Context(), caller, c.Param("key"),
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) buyItNow(c *gin.Context) {
	caller, ok := caller(c)
	if !ok {
		return
	}
	var req BuyItNowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.svc.BuyItNow(
		c.Request.Context(), caller, c.Param("key"), req.Tendered,
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) listOrders(c *gin.Context) {
	orders, err := s.svc.ListOrders(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	list := make([]Order, len(orders))
	for i, o := range orders {
		list[i] = convertOrder(o)
	}
	c.JSON(http.StatusOK, OrdersResponse{Orders: list, Length: len(list)})
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.svc.GetOrder(c.Request.Context(), c.Param("key"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, convertOrder(order))
}

func (s *Server) getCurrentPrice(c *gin.Context) {
	price, err := s.svc.GetCurrentPrice(c.Request.Context(), c.Param("key"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, PriceResponse{Key: c.Param("key"), Price: price})
}

func (s *Server) getSellerOrders(c *gin.Context) {
	keys, err := s.svc.GetSellerOrderKeys(
		c.Request.Context(), domain.Identity(c.Param("seller")),
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OrderKeysResponse{Keys: keys, Length: len(keys)})
}

func (s *Server) getItemOrders(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	keys, err := s.svc.GetItemOrderKeys(
		c.Request.Context(), c.Param("contract"), itemID,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OrderKeysResponse{Keys: keys, Length: len(keys)})
}

func (s *Server) getFeeConfig(c *gin.Context) {
	fee := s.svc.FeeConfig()
	c.JSON(http.StatusOK, FeeConfigResponse{
		Recipient:   string(fee.Recipient),
		BasisPoints: fee.BasisPoints,
	})
}

func (s *Server) setFeeRecipient(c *gin.Context) {
	caller, ok := caller(c)
	if !ok {
		return
	}
	var req FeeRecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.svc.SetFeeRecipient(
		caller, domain.Identity(req.Recipient),
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) updateFeePercent(c *gin.Context) {
	caller, ok := caller(c)
	if !ok {
		return
	}
	var req FeePercentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.svc.UpdateFeePercent(caller, req.BasisPoints); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) getRetainedFunds(c *gin.Context) {
	recipient := domain.Identity(c.Param("identity"))
	c.JSON(http.StatusOK, RetainedFundsResponse{
		Recipient: string(recipient),
		Amount:    s.svc.RetainedFunds(recipient),
	})
}

func (s *Server) subscribeWebhook(c *gin.Context) {
	caller, ok := caller(c)
	if !ok {
		return
	}
	if caller != s.owner {
		abortWithError(c, domain.ErrNotOwner)
		return
	}
	var req SubscribeWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := s.svc.SubscribeWebhook(req.Topic, req.Endpoint, req.Secret)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, SubscribeWebhookResponse{ID: id})
}

func (s *Server) unsubscribeWebhook(c *gin.Context) {
	caller, ok := caller(c)
	if !ok {
		return
	}
	if caller != s.owner {
		abortWithError(c, domain.ErrNotOwner)
		return
	}
	if err := s.svc.UnsubscribeWebhook(
		c.Param("topic"), c.Param("id"),
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func caller(c *gin.Context) (domain.Identity, bool) {
	id := domain.Identity(c.GetHeader(callerHeader))
	if id.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "missing " + callerHeader + " header",
		})
		return "", false
	}
	return id, true
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusCode(err), gin.H{"error": err.Error()})
}

func statusCode(err error) int {
	kind, ok := domain.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case domain.AuthorizationError:
		return http.StatusForbidden
	case domain.ValidationError:
		return http.StatusBadRequest
	case domain.StateError:
		return http.StatusConflict
	case domain.NotFoundError:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

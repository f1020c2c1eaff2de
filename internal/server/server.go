package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers groups everything the router needs.
type Handlers struct {
	Auth          *handler.AuthHandler
	Product       *handler.ProductHandler
	Shop          *handler.ShopHandler
	Cart          *handler.CartHandler
	Order         *handler.OrderHandler
	Payment       *handler.PaymentHandler
	MerchantOrder *handler.MerchantOrderHandler
	Merchant      *handler.MerchantHandler
	Notification  *handler.NotificationHandler
}

// New builds the echo instance with the shared middleware and all
// routes registered.
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	//generated QR PNGs
	e.Static("/static", "static")

	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e, cfg)
	h.Shop.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.Payment.RegisterRoutes(e, cfg)
	h.MerchantOrder.RegisterRoutes(e, cfg)
	h.Merchant.RegisterRoutes(e, cfg)
	h.Notification.RegisterRoutes(e, cfg)

	return e
}

// Start blocks serving on addr.
func Start(addr string, cfg config.Config, h Handlers) error {
	return New(cfg, h).Start(addr)
}

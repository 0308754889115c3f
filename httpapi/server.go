package httpapi

import (
	"os"

	"github.com/VaishnevSreejeev/canteen-ordering-app/bot"
	"github.com/VaishnevSreejeev/canteen-ordering-app/config"
	"github.com/VaishnevSreejeev/canteen-ordering-app/services"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "httpapi").Logger()

type Server struct {
	echo     *echo.Echo
	sessions *sessionStore
	retry    services.RetryPolicy
	notifier *bot.Notifier // nil when no staff bot is configured
}

func NewServer(cfg *config.Config, notifier *bot.Notifier) *Server {
	s := &Server{
		echo:     echo.New(),
		sessions: newSessionStore(),
		retry:    services.NewRetryPolicy(cfg.Retry.MaxAttempts, cfg.Retry.Backoff),
		notifier: notifier,
	}
	s.echo.HideBanner = true
	s.echo.Use(middleware.Recover())
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo
	e.POST("/login", s.handleLogin)
	e.POST("/logout", s.handleLogout)
	e.GET("/menu", s.handleListMenu)

	e.GET("/cart", s.handleGetCart)
	e.POST("/cart/items", s.handleAddCartItem)
	e.DELETE("/cart/items/:id", s.handleRemoveCartItem)

	e.POST("/orders", s.handlePlaceOrder)
	e.GET("/orders", s.handleOrderHistory)

	admin := e.Group("/admin")
	admin.GET("/orders", s.handleAdminOrders)
	admin.GET("/stats", s.handleAdminStats)
	admin.POST("/orders/:id/status", s.handleAdminOrderStatus)
	admin.POST("/orders/:id/paid", s.handleAdminOrderPaid)
	admin.POST("/menu", s.handleAdminAddMenuItem)
	admin.POST("/menu/:id/price", s.handleAdminSetPrice)
	admin.POST("/menu/:id/availability", s.handleAdminSetAvailability)
	admin.DELETE("/menu/:id", s.handleAdminDeleteMenuItem)
	admin.POST("/stock/reset", s.handleAdminResetStock)
}

func (s *Server) Start(addr string) error {
	logger.Info().Str("addr", addr).Msg("http server starting")
	return s.echo.Start(addr)
}

package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/VaishnevSreejeev/canteen-ordering-app/db"
	"github.com/VaishnevSreejeev/canteen-ordering-app/services"

	"github.com/labstack/echo/v4"
)

// currentSession returns the caller's session, creating one (and setting
// the cookie) on first contact.
func (s *Server) currentSession(c echo.Context) (*session, error) {
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions.get(cookie.Value); ok {
			return sess, nil
		}
	}
	token, sess, err := s.sessions.create()
	if err != nil {
		return nil, err
	}
	c.SetCookie(&http.Cookie{Name: sessionCookie, Value: token, Path: "/", HttpOnly: true})
	return sess, nil
}

func (s *Server) handleLogin(c echo.Context) error {
	var req struct {
		StudentID string `json:"student_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
	}
	studentID := services.NormalizeStudentID(req.StudentID)
	if studentID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "student id is required"})
	}
	if err := services.RegisterStudent(c.Request().Context(), studentID); err != nil {
		logger.Error().Err(err).Msg("register student")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "login failed"})
	}
	sess, err := s.currentSession(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "session failed"})
	}
	sess.mu.Lock()
	sess.StudentID = studentID
	sess.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]string{"student_id": studentID})
}

func (s *Server) handleLogout(c echo.Context) error {
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		s.sessions.remove(cookie.Value)
	}
	c.SetCookie(&http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleListMenu(c echo.Context) error {
	items, err := services.ListMenu(c.Request().Context())
	if err != nil {
		logger.Error().Err(err).Msg("list menu")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "menu unavailable"})
	}
	return c.JSON(http.StatusOK, items)
}

func (s *Server) handleGetCart(c echo.Context) error {
	sess, err := s.currentSession(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "session failed"})
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]any{
		"lines": sess.Cart.Snapshot(),
		"total": sess.Cart.Total(),
	})
}

func (s *Server) handleAddCartItem(c echo.Context) error {
	sess, err := s.currentSession(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "session failed"})
	}
	var req struct {
		ItemID   int64 `json:"item_id"`
		Quantity int   `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
	}
	item, err := services.GetMenuItem(c.Request().Context(), req.ItemID)
	if err != nil {
		var removed *services.ItemRemovedError
		if errors.As(err, &removed) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": removed.Error()})
		}
		logger.Error().Err(err).Int64("item_id", req.ItemID).Msg("get menu item")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "menu unavailable"})
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.Cart.Add(item, req.Quantity); err != nil {
		return s.cartError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"lines": sess.Cart.Snapshot(), "total": sess.Cart.Total()})
}

func (s *Server) handleRemoveCartItem(c echo.Context) error {
	sess, err := s.currentSession(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "session failed"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid item id"})
	}
	sess.mu.Lock()
	sess.Cart.Remove(id)
	sess.mu.Unlock()
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handlePlaceOrder(c echo.Context) error {
	sess, err := s.currentSession(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "session failed"})
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.StudentID == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "please log in first"})
	}

	ctx := c.Request().Context()
	orderID, err := services.PlaceOrder(ctx, sess.StudentID, sess.Cart.Snapshot())
	if err != nil {
		return s.placeOrderError(c, err)
	}
	// Only a committed order clears the cart.
	sess.Cart.Clear()

	if s.notifier != nil {
		go func() {
			// The request context ends with the response; the
			// notification outlives it.
			ctx := context.Background()
			order, err := services.GetOrder(ctx, orderID)
			if err != nil {
				logger.Error().Err(err).Int64("order_id", orderID).Msg("load order for notification")
				return
			}
			if err := s.notifier.OrderPlaced(order); err != nil {
				logger.Error().Err(err).Int64("order_id", orderID).Msg("notify staff")
			}
		}()
	}
	return c.JSON(http.StatusCreated, map[string]int64{"order_id": orderID})
}

func (s *Server) handleOrderHistory(c echo.Context) error {
	sess, err := s.currentSession(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "session failed"})
	}
	sess.mu.Lock()
	studentID := sess.StudentID
	sess.mu.Unlock()
	if studentID == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "please log in first"})
	}
	orders, err := services.ListOrdersByStudentRetry(c.Request().Context(), s.retry, studentID)
	if err != nil {
		// Degraded read: empty history plus an explicit flag, not a raw
		// storage error.
		logger.Warn().Err(err).Str("student_id", studentID).Msg("order history degraded")
		return c.JSON(http.StatusOK, map[string]any{"orders": orders, "degraded": true})
	}
	return c.JSON(http.StatusOK, map[string]any{"orders": orders})
}

func (s *Server) handleAdminOrders(c echo.Context) error {
	orders, err := services.ListAllOrdersRetry(c.Request().Context(), s.retry)
	if err != nil {
		logger.Warn().Err(err).Msg("admin dashboard degraded")
		return c.JSON(http.StatusOK, map[string]any{"orders": orders, "degraded": true})
	}
	return c.JSON(http.StatusOK, map[string]any{"orders": orders})
}

func (s *Server) handleAdminStats(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "date is required (YYYY-MM-DD)"})
	}
	stats, err := services.GetDailyStats(c.Request().Context(), date)
	if err != nil {
		logger.Error().Err(err).Str("date", date).Msg("daily stats")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "stats unavailable"})
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) handleAdminOrderStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order id"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
	}
	if err := services.UpdateOrderStatus(c.Request().Context(), id, req.Status); err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleAdminOrderPaid(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order id"})
	}
	var req struct {
		Paid bool `json:"paid"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
	}
	if err := services.MarkOrderPaid(c.Request().Context(), id, req.Paid); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleAdminAddMenuItem(c echo.Context) error {
	var req struct {
		Name       string `json:"name"`
		Category   string `json:"category"`
		Price      int64  `json:"price"`
		DailyLimit int    `json:"daily_limit"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
	}
	id, err := services.AddMenuItem(c.Request().Context(), req.Name, req.Category, req.Price, req.DailyLimit)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleAdminSetPrice(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid item id"})
	}
	var req struct {
		Price int64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
	}
	if err := services.UpdateMenuItemPrice(c.Request().Context(), id, req.Price); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleAdminSetAvailability(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid item id"})
	}
	var req struct {
		Available bool `json:"available"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
	}
	if err := services.SetMenuItemAvailability(c.Request().Context(), id, req.Available); err != nil {
		logger.Error().Err(err).Int64("item_id", id).Msg("set availability")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleAdminDeleteMenuItem(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid item id"})
	}
	if err := services.DeleteMenuItem(c.Request().Context(), id); err != nil {
		logger.Error().Err(err).Int64("item_id", id).Msg("delete menu item")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleAdminResetStock(c echo.Context) error {
	n, err := services.ResetDailyStock(c.Request().Context())
	if err != nil {
		logger.Error().Err(err).Msg("reset daily stock")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "reset failed"})
	}
	return c.JSON(http.StatusOK, map[string]int64{"items_reset": n})
}

func (s *Server) cartError(c echo.Context, err error) error {
	var insufficient *services.InsufficientStockError
	var removed *services.ItemRemovedError
	switch {
	case errors.Is(err, services.ErrQuantityNotPositive):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.As(err, &insufficient):
		return c.JSON(http.StatusConflict, map[string]string{"error": insufficient.Error(), "item": insufficient.Item})
	case errors.As(err, &removed):
		return c.JSON(http.StatusNotFound, map[string]string{"error": removed.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "cart update failed"})
}

func (s *Server) placeOrderError(c echo.Context, err error) error {
	var insufficient *services.InsufficientStockError
	var removed *services.ItemRemovedError
	switch {
	case errors.Is(err, services.ErrEmptyCart), errors.Is(err, services.ErrQuantityNotPositive):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.As(err, &insufficient):
		return c.JSON(http.StatusConflict, map[string]string{"error": insufficient.Error(), "item": insufficient.Item})
	case errors.As(err, &removed):
		return c.JSON(http.StatusConflict, map[string]string{"error": removed.Error(), "item": removed.Item})
	case db.IsTransient(err):
		// The write path never retries on its own; ask the student to.
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "please try again"})
	}
	logger.Error().Err(err).Msg("place order")
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "order not placed"})
}

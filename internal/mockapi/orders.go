package mockapi

import (
	"net/http"

	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/karanch577/sneakerx-admin/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AddOrder stores an order. The API has no order creation endpoint; orders
// come from the storefront, so the sandbox only seeds them. A preset
// CreatedAt is kept so sales ranges can be exercised.
func (s *Store) AddOrder(o model.Order) model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	o.ID = newID()
	ts := s.stamp()
	if o.CreatedAt == "" {
		o.CreatedAt = ts.CreatedAt
	}
	o.UpdatedAt = ts.UpdatedAt
	if o.Status == "" {
		o.Status = model.OrderOrdered
	}
	s.orders = append(s.orders, o)
	return o
}

func (s *Server) ListOrders(c echo.Context) error {
	page, limit := pageParams(c)

	s.store.mu.RLock()
	items, total := paginate(s.store.orders, page, limit)
	s.store.mu.RUnlock()

	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": items, "currentPage": page, "totalPage": total})
}

func (s *Server) GetOrder(c echo.Context) error {
	id := c.Param("id")

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	i := indexOf(s.store.orders, id, orderID)
	if i < 0 {
		return fail(c, http.StatusNotFound, "Order not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "order": s.store.orders[i]})
}

func (s *Server) UpdateOrder(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var req model.OrderUpdate
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse order request", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	i := indexOf(s.store.orders, id, orderID)
	if i < 0 {
		return fail(c, http.StatusNotFound, "Order not found")
	}
	o := &s.store.orders[i]
	o.Address = req.Address
	o.PhoneNumber = req.PhoneNumber
	o.Status = req.Status
	s.store.touch(&o.Timestamps)

	log.Info("Order updated", zap.String("order_id", id), zap.String("status", string(o.Status)))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "order": *o})
}

func (s *Server) DeleteOrder(c echo.Context) error {
	id := c.Param("id")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	i := indexOf(s.store.orders, id, orderID)
	if i < 0 {
		return fail(c, http.StatusNotFound, "Order not found")
	}
	s.store.orders = remove(s.store.orders, i)

	logger.FromEcho(c).Info("Order deleted", zap.String("order_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Order deleted successfully"})
}

// TotalSales sums order amounts, over every order or within ?range=
func (s *Server) TotalSales(c echo.Context) error {
	rng := model.SalesRange(c.QueryParam("range"))
	if rng != "" && !rng.Valid() {
		return fail(c, http.StatusBadRequest, "Invalid range")
	}

	s.store.mu.RLock()
	total, n := s.store.salesSince(rangeStart(s.store.now(), rng))
	s.store.mu.RUnlock()

	sales := []model.Sales{}
	if n > 0 {
		sales = append(sales, model.Sales{TotalSales: total})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "sales": sales})
}

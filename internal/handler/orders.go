package handler

import (
	"net/http"

	"github.com/karanch577/sneakerx-admin/internal/dashboard"
	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) ListOrders(c echo.Context) error {
	return showList(c, h.dash.Orders.Screen)
}

// GetOrder returns an order with the product of every line
func (h *Handler) GetOrder(c echo.Context) error {
	detail, err := h.dash.Orders.Detail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "order": detail.Order, "lines": detail.Lines})
}

func (h *Handler) UpdateOrder(c echo.Context) error {
	var req model.OrderUpdate
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}
	change := dashboard.Change[model.OrderUpdate]{ID: c.Param("id"), Input: req}
	return run(c, h.dash.Orders.Update, change, http.StatusOK, "order")
}

func (h *Handler) DeleteOrder(c echo.Context) error {
	return remove(c, h.dash.Orders.Delete)
}

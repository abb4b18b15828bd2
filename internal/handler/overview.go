package handler

import (
	"errors"
	"net/http"

	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/karanch577/sneakerx-admin/internal/query"
	"github.com/karanch577/sneakerx-admin/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Overview renders the dashboard home: sales for ?range= and the preview
// lists
func (h *Handler) Overview(c echo.Context) error {
	ctx := c.Request().Context()
	ov := h.dash.Overview

	sales, err := ov.Sales(ctx, model.SalesRange(c.QueryParam("range")))
	if err != nil {
		return writeError(c, err)
	}

	for _, load := range []func() error{
		func() error { return ov.Products.List.Load(ctx) },
		func() error { return ov.Users.List.Load(ctx) },
	} {
		if err := load(); err != nil && !errors.Is(err, query.ErrSuperseded) {
			logger.FromEcho(c).Warn("Overview list load failed", zap.Error(err))
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"sales":    sales,
		"products": ov.Products.View(),
		"users":    ov.Users.View(),
	})
}

package handler

import (
	"net/http"

	"github.com/karanch577/sneakerx-admin/internal/dashboard"
	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) ListCategories(c echo.Context) error {
	return showList(c, h.dash.Categories.Screen)
}

// CategoryDraft returns the add form as last submitted
func (h *Handler) CategoryDraft(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dash.Categories.Form.Value())
}

func (h *Handler) CreateCategory(c echo.Context) error {
	var req model.CategoryInput
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}
	h.dash.Categories.Form.Set(req)
	return run(c, h.dash.Categories.Add, req, http.StatusCreated, "collection")
}

func (h *Handler) UpdateCategory(c echo.Context) error {
	var req model.CategoryInput
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}
	change := dashboard.Change[model.CategoryInput]{ID: c.Param("id"), Input: req}
	return run(c, h.dash.Categories.Update, change, http.StatusOK, "collection")
}

func (h *Handler) DeleteCategory(c echo.Context) error {
	return remove(c, h.dash.Categories.Delete)
}

func (h *Handler) ListCoupons(c echo.Context) error {
	return showList(c, h.dash.Coupons.Screen)
}

// CouponDraft returns the add form as last submitted
func (h *Handler) CouponDraft(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dash.Coupons.Form.Value())
}

func (h *Handler) CreateCoupon(c echo.Context) error {
	var req model.CouponCreate
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}
	h.dash.Coupons.Form.Set(req)
	return run(c, h.dash.Coupons.Add, req, http.StatusCreated, "coupon")
}

func (h *Handler) UpdateCoupon(c echo.Context) error {
	var req model.CouponUpdate
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}
	change := dashboard.Change[model.CouponUpdate]{ID: c.Param("id"), Input: req}
	return run(c, h.dash.Coupons.Update, change, http.StatusOK, "coupon")
}

func (h *Handler) DeleteCoupon(c echo.Context) error {
	return remove(c, h.dash.Coupons.Delete)
}

// Package handler exposes the dashboard screens over HTTP for the console
// front end.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/karanch577/sneakerx-admin/internal/apiclient"
	"github.com/karanch577/sneakerx-admin/internal/dashboard"
	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/karanch577/sneakerx-admin/internal/mutation"
	"github.com/karanch577/sneakerx-admin/internal/notify"
	"github.com/karanch577/sneakerx-admin/internal/query"
	"github.com/karanch577/sneakerx-admin/internal/session"
	"github.com/karanch577/sneakerx-admin/pkg/logger"
	"github.com/karanch577/sneakerx-admin/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler serves the console routes
type Handler struct {
	dash *dashboard.Dashboard
	feed *notify.Feed
}

// New creates a handler over the dashboard. feed is drained by the
// notifications route.
func New(dash *dashboard.Dashboard, feed *notify.Feed) *Handler {
	return &Handler{dash: dash, feed: feed}
}

// Register mounts every route on e
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", Health)
	e.GET("/metrics", echo.WrapHandler(prometheus.Handler()))

	e.POST("/signin", h.SignIn)
	e.POST("/signup", h.SignUp)
	e.POST("/signout", h.SignOut)

	d := e.Group("/dashboard", RequireSession(h.dash.Session.Guard))
	d.GET("", h.Overview)
	d.GET("/notifications", h.Notifications)
	d.GET("/me", h.Me)

	d.GET("/categories", h.ListCategories)
	d.GET("/categories/draft", h.CategoryDraft)
	d.POST("/categories", h.CreateCategory)
	d.PUT("/categories/:id", h.UpdateCategory)
	d.DELETE("/categories/:id", h.DeleteCategory)

	d.GET("/coupons", h.ListCoupons)
	d.GET("/coupons/draft", h.CouponDraft)
	d.POST("/coupons", h.CreateCoupon)
	d.PUT("/coupons/:id", h.UpdateCoupon)
	d.DELETE("/coupons/:id", h.DeleteCoupon)

	d.GET("/orders", h.ListOrders)
	d.GET("/orders/:id", h.GetOrder)
	d.PATCH("/orders/:id", h.UpdateOrder)
	d.DELETE("/orders/:id", h.DeleteOrder)

	d.GET("/products", h.ListProducts)
	d.GET("/products/categories", h.ProductCategories)
	d.GET("/products/:id", h.GetProduct)
	d.GET("/products/:id/edit", h.EditProduct)
	d.POST("/products", h.CreateProduct)
	d.PATCH("/products/:id", h.UpdateProduct)
	d.DELETE("/products/:id", h.DeleteProduct)

	d.GET("/users", h.ListUsers)
	d.GET("/users/roles", h.ListRoles)
	d.GET("/users/draft", h.UserDraft)
	d.POST("/users", h.CreateUser)
	d.PATCH("/users/:id", h.UpdateUser)
	d.DELETE("/users/:id", h.DeleteUser)
}

// Health reports liveness
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Notifications hands over and clears the pending notifications
func (h *Handler) Notifications(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"notifications": h.feed.Drain()})
}

// showList brings a screen to the requested page and renders it. Without
// ?page the current page is fetched again.
func showList[T any](c echo.Context, s *dashboard.Screen[T]) error {
	ctx := c.Request().Context()

	var err error
	page, ok := pageParam(c)
	if s.List.State().Status == query.Idle || !ok || page == s.List.Page() {
		err = s.List.Load(ctx)
	}
	if err == nil && ok {
		err = s.List.GoTo(ctx, page)
	}
	return renderList(c, s, err)
}

func renderList[T any](c echo.Context, s *dashboard.Screen[T], err error) error {
	switch {
	case errors.Is(err, query.ErrClosed):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"success": false, "message": err.Error()})
	case err != nil && !errors.Is(err, query.ErrSuperseded):
		logger.FromEcho(c).Warn("List load failed", zap.String("resource", s.List.Resource()), zap.Error(err))
	}
	return c.JSON(http.StatusOK, s.View())
}

func pageParam(c echo.Context) (int, bool) {
	raw := c.QueryParam("page")
	if raw == "" {
		return 0, false
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return page, true
}

// run executes a mutation and writes its result under key
func run[In, Out any](c echo.Context, m *mutation.Mutation[In, Out], in In, status int, key string) error {
	out, err := m.Execute(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(status, echo.Map{"success": true, key: out})
}

// remove executes a delete mutation and relays the server message
func remove(c echo.Context, m *mutation.Mutation[string, *model.Deleted]) error {
	out, err := m.Execute(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": out.Message})
}

// writeError maps a failure onto a status and the operator-facing message
func writeError(c echo.Context, err error) error {
	log := logger.FromEcho(c)

	status := http.StatusBadRequest
	message := err.Error()
	var apiErr *apiclient.Error
	switch {
	case errors.As(err, &apiErr):
		message = apiclient.Message(err)
		switch apiErr.Kind {
		case apiclient.KindAuth:
			status = http.StatusUnauthorized
		case apiclient.KindValidation:
			status = http.StatusBadRequest
		default:
			status = http.StatusBadGateway
		}
	case errors.Is(err, session.ErrNotAdmin):
		status = http.StatusForbidden
	case errors.Is(err, mutation.ErrPending):
		status = http.StatusConflict
	case errors.Is(err, context.Canceled):
		status = http.StatusRequestTimeout
	}

	log.Info("Request failed", zap.Int("status", status), zap.Error(err))
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

func invalidRequest(c echo.Context, err error) error {
	logger.FromEcho(c).Error("Invalid request data", zap.Error(err))
	return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request data"})
}

package handler

import (
	"net/http"

	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/karanch577/sneakerx-admin/internal/session"
	"github.com/karanch577/sneakerx-admin/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequireSession sends visitors the guard does not let in to the login page
func RequireSession(guard *session.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if guard.Enter(c.Request().Context()) != session.Allow {
				logger.FromEcho(c).Info("Redirecting to login", zap.String("path", c.Request().URL.Path))
				return c.Redirect(http.StatusSeeOther, session.LoginPath)
			}
			return next(c)
		}
	}
}

func (h *Handler) SignIn(c echo.Context) error {
	var req model.Credentials
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}
	return run(c, h.dash.Session.SignIn, req, http.StatusOK, "user")
}

func (h *Handler) SignUp(c echo.Context) error {
	var req model.SignUp
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}
	return run(c, h.dash.Session.SignUp, req, http.StatusCreated, "user")
}

func (h *Handler) SignOut(c echo.Context) error {
	return run(c, h.dash.Session.SignOut, struct{}{}, http.StatusOK, "message")
}

// Me returns the signed-in operator
func (h *Handler) Me(c echo.Context) error {
	user, ok := h.dash.Session.Guard.Users().User()
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Not signed in"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

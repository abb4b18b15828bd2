package handler

import (
	"net/http"

	"github.com/karanch577/sneakerx-admin/internal/dashboard"
	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) ListUsers(c echo.Context) error {
	return showList(c, h.dash.Users.Screen)
}

func (h *Handler) ListRoles(c echo.Context) error {
	roles, err := h.dash.Users.Roles(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "roles": roles})
}

// UserDraft returns the add form as last submitted, without the password
func (h *Handler) UserDraft(c echo.Context) error {
	draft := h.dash.Users.Form.Value()
	draft.Password = ""
	return c.JSON(http.StatusOK, draft)
}

func (h *Handler) CreateUser(c echo.Context) error {
	var req model.UserInput
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}
	h.dash.Users.Form.Set(req)
	return run(c, h.dash.Users.Add, req, http.StatusCreated, "user")
}

func (h *Handler) UpdateUser(c echo.Context) error {
	var req model.UserInput
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}
	change := dashboard.Change[model.UserInput]{ID: c.Param("id"), Input: req}
	return run(c, h.dash.Users.Update, change, http.StatusOK, "user")
}

func (h *Handler) DeleteUser(c echo.Context) error {
	return remove(c, h.dash.Users.Delete)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/flockr/messaging-system/internal/core/domain"
	"github.com/flockr/messaging-system/internal/core/ports"
	"github.com/flockr/messaging-system/internal/infrastructure/store"
)

// AdminHandler handles platform administration: global role changes and the
// full state reset.
type AdminHandler struct {
	userService ports.UserService
	store       *store.Store
	log         zerolog.Logger
}

func NewAdminHandler(userService ports.UserService, st *store.Store, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{userService: userService, store: st, log: log}
}

type changePermissionRequest struct {
	UserID       int `json:"u_id"`
	PermissionID int `json:"permission_id"`
}

// ChangePermission changes a user's platform-wide role.
//
// @Summary      Change a user's global permission
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePermissionRequest  true  "Target user and new permission"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin/userpermission/change [post]
func (h *AdminHandler) ChangePermission(c echo.Context) error {
	var req changePermissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.userService.ChangeGlobalRole(c.Request().Context(), ctxCredential(c), req.UserID, domain.Role(req.PermissionID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

// Clear wipes the entire application state. Every user, channel, message and
// live credential is discarded; id counters restart from scratch.
//
// @Summary      Reset all application state
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /clear [delete]
func (h *AdminHandler) Clear(c echo.Context) error {
	h.store.Reset()
	h.log.Warn().Msg("application state cleared")
	return c.JSON(http.StatusOK, map[string]string{})
}

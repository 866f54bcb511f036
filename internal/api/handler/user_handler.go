package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flockr/messaging-system/internal/core/ports"
)

// UserHandler handles HTTP requests for profile operations.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type userJSON struct {
	UserID    int    `json:"u_id"`
	Email     string `json:"email"`
	NameFirst string `json:"name_first"`
	NameLast  string `json:"name_last"`
	Handle    string `json:"handle_str"`
}

func toUserJSON(u ports.UserSummary) userJSON {
	return userJSON{
		UserID:    u.UserID,
		Email:     u.Email,
		NameFirst: u.NameFirst,
		NameLast:  u.NameLast,
		Handle:    u.Handle,
	}
}

type profileResponse struct {
	User userJSON `json:"user"`
}

type setNameRequest struct {
	NameFirst string `json:"name_first"`
	NameLast  string `json:"name_last"`
}

type setEmailRequest struct {
	Email string `json:"email"`
}

type setHandleRequest struct {
	Handle string `json:"handle_str"`
}

// Profile returns any user's public record.
//
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        u_id  query     int  true  "User id"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Router       /user/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	userID, err := intQueryParam(c, "u_id")
	if err != nil {
		return err
	}

	summary, err := h.userService.Profile(c.Request().Context(), ctxCredential(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{User: toUserJSON(*summary)})
}

// SetName updates the caller's first and last name.
//
// @Summary      Update the caller's name
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      setNameRequest  true  "New name"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Router       /user/profile/setname [put]
func (h *UserHandler) SetName(c echo.Context) error {
	var req setNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.userService.SetName(c.Request().Context(), ctxCredential(c), req.NameFirst, req.NameLast); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

// SetEmail updates the caller's email address.
//
// @Summary      Update the caller's email
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      setEmailRequest  true  "New email"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Router       /user/profile/setemail [put]
func (h *UserHandler) SetEmail(c echo.Context) error {
	var req setEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.userService.SetEmail(c.Request().Context(), ctxCredential(c), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

// SetHandle updates the caller's display handle.
//
// @Summary      Update the caller's handle
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      setHandleRequest  true  "New handle"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Router       /user/profile/sethandle [put]
func (h *UserHandler) SetHandle(c echo.Context) error {
	var req setHandleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.userService.SetHandle(c.Request().Context(), ctxCredential(c), req.Handle); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

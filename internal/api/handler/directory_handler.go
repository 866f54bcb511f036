package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flockr/messaging-system/internal/core/ports"
)

// DirectoryHandler handles the cross-cutting read-only queries.
type DirectoryHandler struct {
	directoryService ports.DirectoryService
}

func NewDirectoryHandler(directoryService ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

type usersAllResponse struct {
	Users []userJSON `json:"users"`
}

type searchResponse struct {
	Messages []messageJSON `json:"messages"`
}

// UsersAll lists every registered user.
//
// @Summary      List all users
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersAllResponse
// @Router       /users/all [get]
func (h *DirectoryHandler) UsersAll(c echo.Context) error {
	users, err := h.directoryService.UsersAll(c.Request().Context(), ctxCredential(c))
	if err != nil {
		return err
	}

	out := make([]userJSON, 0, len(users))
	for _, u := range users {
		out = append(out, toUserJSON(u))
	}
	return c.JSON(http.StatusOK, usersAllResponse{Users: out})
}

// Search returns the caller's visible messages containing the query string.
//
// @Summary      Search messages
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        query_str  query     string  true  "Substring to match, case-sensitive"
// @Success      200        {object}  searchResponse
// @Router       /search [get]
func (h *DirectoryHandler) Search(c echo.Context) error {
	views, err := h.directoryService.Search(c.Request().Context(), ctxCredential(c), c.QueryParam("query_str"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, searchResponse{Messages: toMessageListJSON(views)})
}

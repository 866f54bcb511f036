package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flockr/messaging-system/internal/core/ports"
)

// ChannelsHandler handles HTTP requests over the channel collection.
type ChannelsHandler struct {
	channelService ports.ChannelService
}

func NewChannelsHandler(channelService ports.ChannelService) *ChannelsHandler {
	return &ChannelsHandler{channelService: channelService}
}

type createChannelRequest struct {
	Name     string `json:"name"`
	IsPublic bool   `json:"is_public"`
}

type createChannelResponse struct {
	ChannelID int `json:"channel_id"`
}

type channelSummaryJSON struct {
	ChannelID int    `json:"channel_id"`
	Name      string `json:"name"`
}

type channelListResponse struct {
	Channels []channelSummaryJSON `json:"channels"`
}

func toChannelListJSON(summaries []ports.ChannelSummary) []channelSummaryJSON {
	out := make([]channelSummaryJSON, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, channelSummaryJSON{ChannelID: s.ChannelID, Name: s.Name})
	}
	return out
}

// Create makes a new channel owned by the caller.
//
// @Summary      Create a channel
// @Tags         channels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createChannelRequest  true  "Channel name and visibility"
// @Success      200   {object}  createChannelResponse
// @Failure      400   {object}  errorResponse
// @Router       /channels/create [post]
func (h *ChannelsHandler) Create(c echo.Context) error {
	var req createChannelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	id, err := h.channelService.Create(c.Request().Context(), ctxCredential(c), req.Name, req.IsPublic)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, createChannelResponse{ChannelID: id})
}

// ListMine returns the channels the caller belongs to.
//
// @Summary      List the caller's channels
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  channelListResponse
// @Router       /channels/list [get]
func (h *ChannelsHandler) ListMine(c echo.Context) error {
	summaries, err := h.channelService.ListMine(c.Request().Context(), ctxCredential(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, channelListResponse{Channels: toChannelListJSON(summaries)})
}

// ListAll returns every channel on the platform.
//
// @Summary      List all channels
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  channelListResponse
// @Router       /channels/listall [get]
func (h *ChannelsHandler) ListAll(c echo.Context) error {
	summaries, err := h.channelService.ListAll(c.Request().Context(), ctxCredential(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, channelListResponse{Channels: toChannelListJSON(summaries)})
}

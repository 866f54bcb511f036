package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flockr/messaging-system/internal/core/ports"
)

// ChannelHandler handles HTTP requests against a single channel: membership,
// ownership, details and the message page view.
type ChannelHandler struct {
	channelService ports.ChannelService
	messageService ports.MessageService
}

func NewChannelHandler(channelService ports.ChannelService, messageService ports.MessageService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService, messageService: messageService}
}

type channelTargetRequest struct {
	ChannelID int `json:"channel_id" validate:"required"`
	UserID    int `json:"u_id" validate:"required"`
}

type channelOnlyRequest struct {
	ChannelID int `json:"channel_id" validate:"required"`
}

type memberJSON struct {
	UserID    int    `json:"u_id"`
	NameFirst string `json:"name_first"`
	NameLast  string `json:"name_last"`
}

type channelDetailsResponse struct {
	Name    string       `json:"name"`
	Owners  []memberJSON `json:"owner_members"`
	Members []memberJSON `json:"all_members"`
}

type messagePageResponse struct {
	Messages []messageJSON `json:"messages"`
	Start    int           `json:"start"`
	End      int           `json:"end"`
}

func toMemberListJSON(members []ports.Member) []memberJSON {
	out := make([]memberJSON, 0, len(members))
	for _, m := range members {
		out = append(out, memberJSON{UserID: m.UserID, NameFirst: m.NameFirst, NameLast: m.NameLast})
	}
	return out
}

// Invite adds a user to the channel immediately.
//
// @Summary      Invite a user to a channel
// @Tags         channels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      channelTargetRequest  true  "Channel and target user"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /channel/invite [post]
func (h *ChannelHandler) Invite(c echo.Context) error {
	var req channelTargetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.channelService.Invite(c.Request().Context(), ctxCredential(c), req.ChannelID, req.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

// Details returns the channel's name and membership.
//
// @Summary      Get channel details
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Param        channel_id  query     int  true  "Channel id"
// @Success      200         {object}  channelDetailsResponse
// @Failure      400         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Router       /channel/details [get]
func (h *ChannelHandler) Details(c echo.Context) error {
	channelID, err := intQueryParam(c, "channel_id")
	if err != nil {
		return err
	}

	details, err := h.channelService.Details(c.Request().Context(), ctxCredential(c), channelID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, channelDetailsResponse{
		Name:    details.Name,
		Owners:  toMemberListJSON(details.Owners),
		Members: toMemberListJSON(details.Members),
	})
}

// Messages returns one 50-message window of the channel log, newest first.
//
// @Summary      Page through channel messages
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Param        channel_id  query     int  true  "Channel id"
// @Param        start       query     int  true  "Offset from the newest message"
// @Success      200         {object}  messagePageResponse
// @Failure      400         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Router       /channel/messages [get]
func (h *ChannelHandler) Messages(c echo.Context) error {
	channelID, err := intQueryParam(c, "channel_id")
	if err != nil {
		return err
	}
	start, err := intQueryParam(c, "start")
	if err != nil {
		return err
	}

	page, err := h.messageService.List(c.Request().Context(), ctxCredential(c), channelID, start)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messagePageResponse{
		Messages: toMessageListJSON(page.Messages),
		Start:    page.Start,
		End:      page.End,
	})
}

// Leave removes the caller from the channel.
//
// @Summary      Leave a channel
// @Tags         channels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      channelOnlyRequest  true  "Channel"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /channel/leave [post]
func (h *ChannelHandler) Leave(c echo.Context) error {
	var req channelOnlyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.channelService.Leave(c.Request().Context(), ctxCredential(c), req.ChannelID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

// Join adds the caller to a public channel.
//
// @Summary      Join a channel
// @Tags         channels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      channelOnlyRequest  true  "Channel"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /channel/join [post]
func (h *ChannelHandler) Join(c echo.Context) error {
	var req channelOnlyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.channelService.Join(c.Request().Context(), ctxCredential(c), req.ChannelID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

// AddOwner promotes the target user within the channel.
//
// @Summary      Add a channel owner
// @Tags         channels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      channelTargetRequest  true  "Channel and target user"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /channel/addowner [post]
func (h *ChannelHandler) AddOwner(c echo.Context) error {
	var req channelTargetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.channelService.AddOwner(c.Request().Context(), ctxCredential(c), req.ChannelID, req.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

// RemoveOwner demotes the target user within the channel.
//
// @Summary      Remove a channel owner
// @Tags         channels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      channelTargetRequest  true  "Channel and target user"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /channel/removeowner [post]
func (h *ChannelHandler) RemoveOwner(c echo.Context) error {
	var req channelTargetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.channelService.RemoveOwner(c.Request().Context(), ctxCredential(c), req.ChannelID, req.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

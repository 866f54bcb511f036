package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flockr/messaging-system/internal/core/ports"
)

// StandupHandler handles HTTP requests for standup sessions.
type StandupHandler struct {
	standupService ports.StandupService
}

func NewStandupHandler(standupService ports.StandupService) *StandupHandler {
	return &StandupHandler{standupService: standupService}
}

type standupStartRequest struct {
	ChannelID int `json:"channel_id" validate:"required"`
	Length    int `json:"length"`
}

type standupStartResponse struct {
	TimeFinish int64 `json:"time_finish"`
}

type standupActiveResponse struct {
	IsActive   bool   `json:"is_active"`
	TimeFinish *int64 `json:"time_finish"`
}

type standupSendRequest struct {
	ChannelID int    `json:"channel_id" validate:"required"`
	Message   string `json:"message"`
}

// Start opens a standup session in the channel.
//
// @Summary      Start a standup
// @Tags         standup
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      standupStartRequest  true  "Channel and duration in seconds"
// @Success      200   {object}  standupStartResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /standup/start [post]
func (h *StandupHandler) Start(c echo.Context) error {
	var req standupStartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	finish, err := h.standupService.Start(c.Request().Context(), ctxCredential(c), req.ChannelID, req.Length)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, standupStartResponse{TimeFinish: finish})
}

// Active reports whether the channel has a live standup session.
//
// @Summary      Get standup status
// @Tags         standup
// @Produce      json
// @Security     BearerAuth
// @Param        channel_id  query     int  true  "Channel id"
// @Success      200         {object}  standupActiveResponse
// @Failure      400         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Router       /standup/active [get]
func (h *StandupHandler) Active(c echo.Context) error {
	channelID, err := intQueryParam(c, "channel_id")
	if err != nil {
		return err
	}

	status, err := h.standupService.Active(c.Request().Context(), ctxCredential(c), channelID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, standupActiveResponse{IsActive: status.IsActive, TimeFinish: status.TimeFinish})
}

// Send buffers a line into the channel's active standup session.
//
// @Summary      Send a standup line
// @Tags         standup
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      standupSendRequest  true  "Channel and line"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /standup/send [post]
func (h *StandupHandler) Send(c echo.Context) error {
	var req standupSendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.standupService.Send(c.Request().Context(), ctxCredential(c), req.ChannelID, req.Message); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flockr/messaging-system/internal/core/ports"
)

// MessageHandler handles HTTP requests for the message lifecycle.
type MessageHandler struct {
	messageService ports.MessageService
}

func NewMessageHandler(messageService ports.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type sendMessageRequest struct {
	ChannelID int    `json:"channel_id" validate:"required"`
	Message   string `json:"message"`
}

type sendLaterRequest struct {
	ChannelID int    `json:"channel_id" validate:"required"`
	Message   string `json:"message"`
	TimeSent  int64  `json:"time_sent" validate:"required"`
}

type messageIDResponse struct {
	MessageID int `json:"message_id"`
}

type messageTargetRequest struct {
	MessageID int `json:"message_id" validate:"required"`
}

type editMessageRequest struct {
	MessageID int    `json:"message_id" validate:"required"`
	Message   string `json:"message"`
}

type reactRequest struct {
	MessageID int `json:"message_id" validate:"required"`
	ReactID   int `json:"react_id"`
}

// Send posts a message to a channel.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Channel and text"
// @Success      200   {object}  messageIDResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /message/send [post]
func (h *MessageHandler) Send(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := h.messageService.Send(c.Request().Context(), ctxCredential(c), req.ChannelID, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageIDResponse{MessageID: id})
}

// SendLater schedules a message for a future timestamp. The message id is
// allocated immediately; the content appears in the channel at time_sent.
//
// @Summary      Schedule a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendLaterRequest  true  "Channel, text and unix send time"
// @Success      200   {object}  messageIDResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /message/sendlater [post]
func (h *MessageHandler) SendLater(c echo.Context) error {
	var req sendLaterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := h.messageService.SendLater(c.Request().Context(), ctxCredential(c), req.ChannelID, req.Message, time.Unix(req.TimeSent, 0))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageIDResponse{MessageID: id})
}

// Remove deletes a message.
//
// @Summary      Remove a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      messageTargetRequest  true  "Message id"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /message/remove [delete]
func (h *MessageHandler) Remove(c echo.Context) error {
	var req messageTargetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.messageService.Remove(c.Request().Context(), ctxCredential(c), req.MessageID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

// Edit replaces a message's text; empty text removes the message.
//
// @Summary      Edit a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      editMessageRequest  true  "Message id and new text"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /message/edit [put]
func (h *MessageHandler) Edit(c echo.Context) error {
	var req editMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.messageService.Edit(c.Request().Context(), ctxCredential(c), req.MessageID, req.Message); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

// Pin marks a message as pinned.
//
// @Summary      Pin a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      messageTargetRequest  true  "Message id"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /message/pin [post]
func (h *MessageHandler) Pin(c echo.Context) error {
	var req messageTargetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.messageService.Pin(c.Request().Context(), ctxCredential(c), req.MessageID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

// Unpin clears a message's pinned flag.
//
// @Summary      Unpin a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      messageTargetRequest  true  "Message id"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /message/unpin [post]
func (h *MessageHandler) Unpin(c echo.Context) error {
	var req messageTargetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.messageService.Unpin(c.Request().Context(), ctxCredential(c), req.MessageID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

// React adds the caller's react to a message.
//
// @Summary      React to a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reactRequest  true  "Message id and react id"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Router       /message/react [post]
func (h *MessageHandler) React(c echo.Context) error {
	var req reactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.messageService.React(c.Request().Context(), ctxCredential(c), req.MessageID, req.ReactID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

// Unreact removes the caller's react from a message.
//
// @Summary      Remove a react from a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reactRequest  true  "Message id and react id"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Router       /message/unreact [post]
func (h *MessageHandler) Unreact(c echo.Context) error {
	var req reactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.messageService.Unreact(c.Request().Context(), ctxCredential(c), req.MessageID, req.ReactID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

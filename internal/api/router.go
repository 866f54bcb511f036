// Package api is the HTTP boundary: routing, middleware, error mapping and
// the request/response schemas live here. Handlers translate between the wire
// shapes and the core's ports; all business rules stay in the core.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/flockr/messaging-system/internal/api/handler"
	"github.com/flockr/messaging-system/internal/api/middleware"
	"github.com/flockr/messaging-system/internal/core/ports"
	"github.com/flockr/messaging-system/internal/core/service"
	"github.com/flockr/messaging-system/internal/infrastructure/config"
	"github.com/flockr/messaging-system/internal/infrastructure/store"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, st *store.Store, sched ports.Scheduler, mailer ports.ResetMailer, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("flockr"))

	// --- Core services ---
	authService := service.NewAuthService(st, cfg.JWTSecret, mailer, log)
	userService := service.NewUserService(st, cfg.JWTSecret, log)
	channelService := service.NewChannelService(st, cfg.JWTSecret, log)
	messageService := service.NewMessageService(st, cfg.JWTSecret, sched, log)
	standupService := service.NewStandupService(st, cfg.JWTSecret, sched, log)
	directoryService := service.NewDirectoryService(st, cfg.JWTSecret, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	channelHandler := handler.NewChannelHandler(channelService, messageService)
	channelsHandler := handler.NewChannelsHandler(channelService)
	messageHandler := handler.NewMessageHandler(messageService)
	standupHandler := handler.NewStandupHandler(standupService)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	adminHandler := handler.NewAdminHandler(userService, st, log)
	healthHandler := handler.NewHealthHandler(st)

	// --- Open routes (no credential required) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/passwordreset/request", authHandler.RequestPasswordReset)
	e.POST("/auth/passwordreset/reset", authHandler.ResetPassword)
	e.DELETE("/clear", adminHandler.Clear)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness)     // readiness – registry sizes of the in-process store
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Credentialed routes ---
	// The middleware only extracts the bearer token; the core decides
	// whether it is live.
	g := e.Group("", middleware.Credential())

	g.POST("/auth/logout", authHandler.Logout)

	g.GET("/user/profile", userHandler.Profile)
	g.PUT("/user/profile/setname", userHandler.SetName)
	g.PUT("/user/profile/setemail", userHandler.SetEmail)
	g.PUT("/user/profile/sethandle", userHandler.SetHandle)

	g.POST("/channel/invite", channelHandler.Invite)
	g.GET("/channel/details", channelHandler.Details)
	g.GET("/channel/messages", channelHandler.Messages)
	g.POST("/channel/leave", channelHandler.Leave)
	g.POST("/channel/join", channelHandler.Join)
	g.POST("/channel/addowner", channelHandler.AddOwner)
	g.POST("/channel/removeowner", channelHandler.RemoveOwner)

	g.GET("/channels/list", channelsHandler.ListMine)
	g.GET("/channels/listall", channelsHandler.ListAll)
	g.POST("/channels/create", channelsHandler.Create)

	g.POST("/message/send", messageHandler.Send)
	g.POST("/message/sendlater", messageHandler.SendLater)
	g.DELETE("/message/remove", messageHandler.Remove)
	g.PUT("/message/edit", messageHandler.Edit)
	g.POST("/message/pin", messageHandler.Pin)
	g.POST("/message/unpin", messageHandler.Unpin)
	g.POST("/message/react", messageHandler.React)
	g.POST("/message/unreact", messageHandler.Unreact)

	g.POST("/standup/start", standupHandler.Start)
	g.GET("/standup/active", standupHandler.Active)
	g.POST("/standup/send", standupHandler.Send)

	g.GET("/users/all", directoryHandler.UsersAll)
	g.GET("/search", directoryHandler.Search)

	g.POST("/admin/userpermission/change", adminHandler.ChangePermission)

	return e
}

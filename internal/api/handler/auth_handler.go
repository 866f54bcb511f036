package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flockr/messaging-system/internal/core/ports"
)

// AuthHandler handles HTTP requests for account lifecycle operations.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	NameFirst string `json:"name_first"`
	NameLast  string `json:"name_last"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	UserID int    `json:"u_id"`
	Token  string `json:"token"`
}

type logoutResponse struct {
	IsSuccess bool `json:"is_success"`
}

type resetRequestRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	ResetCode   string `json:"reset_code"`
	NewPassword string `json:"new_password"`
}

// Register creates a new account and returns a live credential.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		NameFirst: req.NameFirst,
		NameLast:  req.NameLast,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{UserID: result.UserID, Token: result.Token})
}

// Login authenticates a user and returns a fresh credential.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{UserID: result.UserID, Token: result.Token})
}

// Logout revokes the caller's credential.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  logoutResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	ok, err := h.authService.Logout(c.Request().Context(), ctxCredential(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logoutResponse{IsSuccess: ok})
}

// RequestPasswordReset issues a reset code for the given email. The response
// is identical whether or not the email belongs to a registered account.
//
// @Summary      Request a password reset code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetRequestRequest  true  "Account email"
// @Success      200   {object}  map[string]string
// @Router       /auth/passwordreset/request [post]
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req resetRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.authService.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

// ResetPassword consumes a reset code and sets the new password.
//
// @Summary      Reset a password with a code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Reset code and new password"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Router       /auth/passwordreset/reset [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.ResetCode, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

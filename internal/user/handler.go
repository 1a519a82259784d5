package user

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Bbmxzz/see2hear/internal/shared"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	store  *Store
	tokens TokenStore
	logger *slog.Logger
}

func NewHandler(store *Store, tokens TokenStore, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		tokens: tokens,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.POST("/check-email", h.CheckEmail)
	g.POST("/reset-password", h.ResetPassword)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      201  {object}  authResponse
// @Failure      400  {object}  shared.APIError
// @Failure      409  {object}  shared.APIError
// @Router       /signup [post]
func (h *Handler) Signup(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "Invalid request body")
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return shared.BadRequest("missing_credentials", "Please provide both email and password")
	}

	exists, err := h.store.EmailExists(c.Request().Context(), email)
	if err != nil {
		h.logger.Error("email lookup failed", "error", err)
		return shared.InternalError("signup_failed", "Signup failed")
	}
	if exists {
		return shared.Conflict("email_taken", "Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return shared.InternalError("signup_failed", "Signup failed")
	}
	u := &User{Email: email, PasswordHash: string(hash)}
	if err := h.store.Create(c.Request().Context(), u); err != nil {
		h.logger.Error("user create failed", "error", err)
		return shared.InternalError("signup_failed", "Signup failed")
	}

	return c.JSON(http.StatusCreated, authResponse{Success: true, Message: "Signup successful"})
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  authResponse
// @Failure      400  {object}  shared.APIError
// @Failure      401  {object}  shared.APIError
// @Router       /login [post]
func (h *Handler) Login(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "Invalid request body")
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return shared.BadRequest("missing_credentials", "Please provide both email and password")
	}

	u, err := h.store.GetByEmail(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.Unauthorized("invalid_credentials", "Invalid email or password")
		}
		h.logger.Error("user lookup failed", "error", err)
		return shared.InternalError("login_failed", "Login failed")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return shared.Unauthorized("invalid_credentials", "Invalid email or password")
	}

	return c.JSON(http.StatusOK, authResponse{Success: true, Message: "Login successful"})
}

type checkEmailRequest struct {
	Email string `json:"email"`
}

type checkEmailResponse struct {
	Success bool   `json:"success"`
	Exists  bool   `json:"exists"`
	Token   string `json:"token,omitempty"`
}

// @Summary      Check an email before password reset
// @Description  Reports whether the email is registered and, if so, issues a short-lived reset token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  checkEmailResponse
// @Failure      400  {object}  shared.APIError
// @Router       /check-email [post]
func (h *Handler) CheckEmail(c echo.Context) error {
	var req checkEmailRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "Invalid request body")
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return shared.BadRequest("missing_email", "Please provide an email")
	}

	exists, err := h.store.EmailExists(c.Request().Context(), email)
	if err != nil {
		h.logger.Error("email lookup failed", "error", err)
		return shared.InternalError("check_failed", "Email check failed")
	}
	if !exists {
		// The client branches on the flag, not the status code.
		return c.JSON(http.StatusOK, checkEmailResponse{Success: true, Exists: false})
	}

	token, err := h.tokens.Issue(c.Request().Context(), email)
	if err != nil {
		h.logger.Error("reset token issue failed", "error", err)
		return shared.InternalError("check_failed", "Email check failed")
	}
	return c.JSON(http.StatusOK, checkEmailResponse{Success: true, Exists: true, Token: token})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// @Summary      Reset a password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  authResponse
// @Failure      400  {object}  shared.APIError
// @Failure      401  {object}  shared.APIError
// @Router       /reset-password [post]
func (h *Handler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "Invalid request body")
	}
	if req.Token == "" || req.NewPassword == "" {
		return shared.BadRequest("missing_fields", "Please provide a token and a new password")
	}

	email, err := h.tokens.Consume(c.Request().Context(), req.Token)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.Unauthorized("invalid_token", "Reset token is invalid or expired")
		}
		h.logger.Error("reset token consume failed", "error", err)
		return shared.InternalError("reset_failed", "Password reset failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return shared.InternalError("reset_failed", "Password reset failed")
	}
	if err := h.store.UpdatePassword(c.Request().Context(), email, string(hash)); err != nil {
		h.logger.Error("password update failed", "error", err)
		return shared.InternalError("reset_failed", "Password reset failed")
	}

	return c.JSON(http.StatusOK, authResponse{Success: true, Message: "Password has been reset successfully"})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/propdesk/crm-console/internal/api/middleware"
	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
	"github.com/propdesk/crm-console/internal/metrics"
)

// AuthHandler exposes the login, registration and account-recovery flows
// and owns the session cookie lifecycle.
type AuthHandler struct {
	auth     ports.AuthGateway
	sessions ports.SessionManager
	codec    *middleware.CookieCodec
	log      zerolog.Logger
}

func NewAuthHandler(auth ports.AuthGateway, sessions ports.SessionManager, codec *middleware.CookieCodec, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, codec: codec, log: log}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type verifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type requestOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,min=10"`
}

type verifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,min=10"`
	OTP         string `json:"otp" validate:"required,len=6"`
}

type sessionResponse struct {
	User *domain.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a CRM API token and opens a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	token, user, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return opFailed(err, "Invalid email or password")
	}

	if err := h.openSession(c, token, user, "password"); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: user})
}

// Register creates an account. No session is opened; the account stays
// unusable until the email is verified.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.auth.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return opFailed(err, "Registration failed. Please try again.")
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

// VerifyEmail consumes a verification token. A successful verification
// authenticates immediately, so the user lands in the console signed in.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req verifyEmailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	token, user, err := h.auth.VerifyEmail(ctx, req.Token)
	if err != nil {
		return opFailed(err, "Email verification failed. Please try again.")
	}

	if err := h.openSession(c, token, user, "email_verification"); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: user})
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req emailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.auth.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		return opFailed(err, "Failed to send reset link. Please try again.")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.auth.ResetPassword(c.Request().Context(), req.Token, req.Password)
	if err != nil {
		return opFailed(err, "Password reset failed. Please try again.")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req emailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.auth.ResendVerification(c.Request().Context(), req.Email)
	if err != nil {
		return opFailed(err, "Failed to resend verification email.")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

func (h *AuthHandler) RequestOTP(c echo.Context) error {
	var req requestOTPRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.auth.RequestOTP(c.Request().Context(), req.PhoneNumber)
	if err != nil {
		return opFailed(err, "Failed to send OTP")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	token, user, err := h.auth.VerifyOTP(ctx, req.PhoneNumber, req.OTP)
	if err != nil {
		return opFailed(err, "Invalid OTP")
	}

	if err := h.openSession(c, token, user, "otp"); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: user})
}

// Me returns the session's cached profile. The gate has already run the
// staleness check, so no upstream call happens here.
func (h *AuthHandler) Me(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: session.User})
}

// Logout revokes the token upstream and clears the session. The local
// clear happens even when the revocation call fails; a dead server must
// not trap the user in a signed-in console.
func (h *AuthHandler) Logout(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.auth.Logout(ctx, session.Token); err != nil {
		h.log.Warn().Err(err).Str("session_id", session.ID).Msg("upstream logout failed, clearing local session anyway")
	}

	if _, err := h.sessions.Logout(ctx, session.ID); err != nil {
		return opFailed(err, "Logout failed")
	}
	metrics.SessionsEndedTotal.WithLabelValues("logout").Inc()

	h.codec.ClearCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) openSession(c echo.Context, token string, user *domain.User, method string) error {
	ctx := c.Request().Context()
	session, err := h.sessions.Start(ctx, token, user)
	if err != nil {
		return opFailed(err, "Failed to start session")
	}

	value, err := h.codec.Issue(session.ID)
	if err != nil {
		return opFailed(err, "Failed to start session")
	}
	h.codec.SetCookie(c, value)
	metrics.SessionsStartedTotal.WithLabelValues(method).Inc()
	return nil
}

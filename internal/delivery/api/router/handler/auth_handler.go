// Package handler contains the HTTP handlers for the API.
package handler

import (
	"log/slog"
	"net/http"

	"contacts/internal/delivery/api/response"
	deliverycontext "contacts/internal/delivery/context"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// avatarFormField is the multipart field carrying the uploaded avatar.
const avatarFormField = "avatar"

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves the /users routes.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// RegisterRequest is the body of POST /users/register.
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,contactemail"`
	Password     string `json:"password" validate:"required,min=5"`
	Subscription string `json:"subscription" validate:"omitempty,oneof=starter pro business"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,contactemail"`
	Password string `json:"password" validate:"required,min=5"`
}

// ResendVerificationRequest is the body of POST /users/verify.
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,contactemail"`
}

// RegisterResponse wraps the created user.
type RegisterResponse struct {
	User *usecase.UserView `json:"user"`
}

// AvatarResponse reports the stored avatar location.
type AvatarResponse struct {
	AvatarURL string `json:"avatarURL"`
}

// Register creates an account and sends the verification email.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.authUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		Subscription: req.Subscription,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, RegisterResponse{User: view})
}

// VerifyEmail consumes the code from the emailed link.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return errors.Wrap(domainerrors.ErrUserNotFound, "empty verification code")
	}

	if err := h.authUC.VerifyEmail(c.Request().Context(), code); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "Verification successful")
}

// ResendVerification mails the pending verification link again.
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req ResendVerificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authUC.ResendVerification(c.Request().Context(), req.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "Verification email sent")
}

// Login exchanges credentials for a session token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// Logout ends the current session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authUC.Logout(c.Request().Context(), deliverycontext.GetUserFromEcho(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// Current returns the authenticated user's public view.
func (h *AuthHandler) Current(c echo.Context) error {
	view, err := h.authUC.Current(c.Request().Context(), deliverycontext.GetUserFromEcho(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view)
}

// UpdateAvatar accepts a multipart image upload.
func (h *AuthHandler) UpdateAvatar(c echo.Context) error {
	fileHeader, err := c.FormFile(avatarFormField)
	if errors.Is(err, http.ErrMissingFile) {
		return errors.WithStack(domainerrors.ErrAvatarMissing)
	}
	if err != nil {
		return errors.Wrap(domainerrors.ErrAvatarMissing, err.Error())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded avatar")
	}
	defer file.Close()

	avatarURL, err := h.authUC.UpdateAvatar(c.Request().Context(), deliverycontext.GetUserFromEcho(c), file)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, AvatarResponse{AvatarURL: avatarURL})
}

// bindAndValidate decodes the request into req and runs the echo validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithMessage("Invalid request body"), err.Error())
	}

	if err := c.Validate(req); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

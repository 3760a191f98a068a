package handler

import (
	"log/slog"
	"net/http"

	"contacts/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const avatarCacheControl = "public, max-age=86400"

// AvatarHandlerParams holds dependencies for AvatarHandler, injected by Fx.
type AvatarHandlerParams struct {
	fx.In

	Storage service.AvatarStorage
	Logger  *slog.Logger
}

// AvatarHandler serves stored avatar images.
type AvatarHandler struct {
	storage service.AvatarStorage
	logger  *slog.Logger
}

// NewAvatarHandler is the constructor for AvatarHandler.
func NewAvatarHandler(params AvatarHandlerParams) *AvatarHandler {
	return &AvatarHandler{
		storage: params.Storage,
		logger:  params.Logger,
	}
}

// Serve streams GET /avatars/:name.
func (h *AvatarHandler) Serve(c echo.Context) error {
	reader, err := h.storage.Open(c.Request().Context(), c.Param("name"))
	if err != nil {
		return errors.WithStack(err)
	}
	defer reader.Close()

	c.Response().Header().Set("Cache-Control", avatarCacheControl)

	return c.Stream(http.StatusOK, "image/jpeg", reader)
}

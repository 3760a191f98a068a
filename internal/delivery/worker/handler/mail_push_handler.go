// Package handler contains the Pub/Sub push handlers of the mail worker.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"contacts/config"
	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/constants"
	"contacts/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func newRetryableError(err error) error {
	return &retryableError{err: err}
}

func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// tokenValidator matches idtoken.Validate.
type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// MailPushHandler delivers queued mail events pushed by Pub/Sub.
type MailPushHandler struct {
	verifyPushAuth bool
	audience       string
	validate       tokenValidator
	mailer         service.MailSender
	logger         *slog.Logger
}

// MailPushHandlerParams holds dependencies for the MailPushHandler
type MailPushHandlerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Mailer service.MailSender
}

// NewMailPushHandler creates a new Pub/Sub push handler
func NewMailPushHandler(params MailPushHandlerParams) *MailPushHandler {
	// Push requests are only signed by Google outside local development
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	var audience string
	if params.Config.PubSub != nil {
		audience = params.Config.PubSub.PushAudience
	}

	return &MailPushHandler{
		verifyPushAuth: verifyPushAuth,
		audience:       audience,
		validate:       idtoken.Validate,
		mailer:         params.Mailer,
		logger:         params.Logger,
	}
}

// HandlePush answers 2xx when the message is done with, either delivered or
// undeliverable, and 503 when Pub/Sub should redeliver it. Malformed pushes
// are logged and acknowledged since redelivery cannot repair them.
func (h *MailPushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusOK)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusOK)
	}

	var event service.MailEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse mail event", slog.Any("error", err))

		return c.NoContent(http.StatusOK)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	if err := h.deliver(ctx, &event); err != nil {
		reqLogger.Error("[Worker] Failed to deliver mail",
			slog.String("message_id", event.MessageID),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Mail delivered", slog.String("message_id", event.MessageID))

	return c.NoContent(http.StatusOK)
}

// extractRequestID prefers message attributes, then the event, then the
// incoming request, and generates one as a last resort.
func (h *MailPushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.MailEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

func (h *MailPushHandler) deliver(ctx context.Context, event *service.MailEvent) error {
	if event.Mail == nil || strings.TrimSpace(event.Mail.To) == "" {
		return errors.New("mail event has no recipient")
	}

	if err := h.mailer.Send(ctx, event.Mail); err != nil {
		return newRetryableError(errors.WithStack(err))
	}

	return nil
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func (h *MailPushHandler) verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	audience := h.audience
	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http"
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	payload, err := h.validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}

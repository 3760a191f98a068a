package impl

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"contacts/config"
	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/domain/service"
	"contacts/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	verifyPath           = "/users/verify/"
	verificationSubject  = "Verify email"
	defaultMailTimeout   = 10 * time.Second
	verificationTemplate = `<p>Please confirm your email address.</p>` +
		`<p><a target="_blank" href="{{.Link}}">Click to verify email</a></p>`
)

var verificationBody = template.Must(template.New("verification").Parse(verificationTemplate))

// verificationService implements the VerificationUsecase interface.
type verificationService struct {
	codes    service.CodeGenerator
	mailer   service.MailSender
	userRepo repository.UserRepository
	baseURL  string
	timeout  time.Duration
	logger   *slog.Logger
}

// VerificationServiceParams holds dependencies for VerificationService, injected by Fx.
type VerificationServiceParams struct {
	fx.In

	Codes    service.CodeGenerator
	Mailer   service.MailSender
	UserRepo repository.UserRepository
	Config   *config.Config
	Logger   *slog.Logger
}

// NewVerificationService is the constructor for verificationService.
func NewVerificationService(params VerificationServiceParams) usecase.VerificationUsecase {
	timeout := defaultMailTimeout
	if params.Config.Mail != nil && params.Config.Mail.Timeout > 0 {
		timeout = params.Config.Mail.Timeout
	}

	return &verificationService{
		codes:    params.Codes,
		mailer:   params.Mailer,
		userRepo: params.UserRepo,
		baseURL:  strings.TrimRight(params.Config.App.BaseURL, "/"),
		timeout:  timeout,
		logger:   params.Logger,
	}
}

func (srv *verificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GenerateCode returns a fresh verification code.
func (srv *verificationService) GenerateCode() (string, error) {
	code, err := srv.codes.Generate()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate verification code")
	}

	return code, nil
}

// VerificationLink builds the public link that consumes code.
func (srv *verificationService) VerificationLink(code string) string {
	return srv.baseURL + verifyPath + url.PathEscape(code)
}

// SendVerification mails the verification link, bounded by the mail timeout.
func (srv *verificationService) SendVerification(ctx context.Context, email, code string) error {
	var body bytes.Buffer
	if err := verificationBody.Execute(&body, struct{ Link string }{Link: srv.VerificationLink(code)}); err != nil {
		return errors.Wrap(domainerrors.ErrEmailDeliveryFailed, err.Error())
	}

	sendCtx, cancel := context.WithTimeout(ctx, srv.timeout)
	defer cancel()

	err := srv.mailer.Send(sendCtx, &service.MailMessage{
		To:      email,
		Subject: verificationSubject,
		HTML:    body.String(),
	})
	if err != nil {
		srv.log(ctx).Error("Failed to send verification email", slog.String("to", email), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrEmailDeliveryFailed, err.Error())
	}

	srv.log(ctx).Debug("Verification email sent", slog.String("to", email))

	return nil
}

// MarkVerified moves the user to the verified state and persists it.
func (srv *verificationService) MarkVerified(ctx context.Context, user *entity.User) error {
	if user.IsVerified() {
		return errors.WithStack(domainerrors.ErrAlreadyVerified)
	}

	user.MarkVerified()
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to mark user verified")
	}

	return nil
}

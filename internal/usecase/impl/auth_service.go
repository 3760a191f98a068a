// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"io"
	"log/slog"

	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/domain/service"
	"contacts/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager     repository.TransactionManager
	userRepo      repository.UserRepository
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	avatars       service.AvatarResolver
	avatarStorage service.AvatarStorage
	verification  usecase.VerificationUsecase
	logger        *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	UserRepo      repository.UserRepository
	Hasher        service.PasswordHasher
	TokenService  service.TokenService
	Avatars       service.AvatarResolver
	AvatarStorage service.AvatarStorage
	Verification  usecase.VerificationUsecase
	Logger        *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:     params.TxManager,
		userRepo:      params.UserRepo,
		hasher:        params.Hasher,
		tokenService:  params.TokenService,
		avatars:       params.Avatars,
		avatarStorage: params.AvatarStorage,
		verification:  params.Verification,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an unverified user and mails the verification link.
// The user is persisted before the mail is sent, so a delivery failure leaves
// an unverified account that can be recovered through ResendVerification.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.UserView, error) {
	subscription := entity.SubscriptionOrDefault(input.Subscription)
	if !subscription.IsValid() {
		return nil, errors.Wrapf(domainerrors.ErrValidationFailed, "unknown subscription %q", input.Subscription)
	}

	code, err := srv.verification.GenerateCode()
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInternalError, "failed to generate verification code: "+err.Error())
	}

	user := &entity.User{
		Email:             input.Email,
		Subscription:      subscription,
		AvatarURL:         srv.avatars.DefaultURL(input.Email),
		VerificationToken: code,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return errors.Wrap(domainerrors.ErrEmailInUse, "email already registered")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up email")
		}

		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}
		user.PasswordHash = hash

		return userRepo.Create(ctx, user)
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to register user")
	}

	srv.log(ctx).Info("User registered", slog.String("userID", user.ID.String()))

	if err := srv.verification.SendVerification(ctx, user.Email, code); err != nil {
		srv.log(ctx).Error("Verification email not delivered",
			slog.String("userID", user.ID.String()),
			slog.Any("error", err),
		)

		return nil, err
	}

	return usecase.NewUserView(user), nil
}

// VerifyEmail consumes a verification code.
func (srv *authService) VerifyEmail(ctx context.Context, code string) error {
	user, err := srv.userRepo.FindByVerificationToken(ctx, code)
	if errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(domainerrors.ErrUserNotFound, "unknown verification code")
	}
	if err != nil {
		return errors.Wrap(err, "failed to find user by verification code")
	}

	if err := srv.verification.MarkVerified(ctx, user); err != nil {
		return err
	}

	srv.log(ctx).Info("Email verified", slog.String("userID", user.ID.String()))

	return nil
}

// ResendVerification mails the pending verification code again.
func (srv *authService) ResendVerification(ctx context.Context, email string) error {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(domainerrors.ErrUserNotFound, "no user with this email")
	}
	if err != nil {
		return errors.Wrap(err, "failed to find user by email")
	}

	if user.IsVerified() {
		return errors.WithStack(domainerrors.ErrAlreadyVerified)
	}

	return srv.verification.SendVerification(ctx, user.Email, user.VerificationToken)
}

// Login checks credentials and replaces the user's session token.
// Unknown email and wrong password produce the same error.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "unknown email")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login with wrong password", slog.String("userID", user.ID.String()))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	if !user.IsVerified() {
		return nil, errors.WithStack(domainerrors.ErrNotVerified)
	}

	token, err := srv.tokenService.Issue(user.ID)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	user.Token = token
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to store session token")
	}

	srv.log(ctx).Info("User logged in",
		slog.String("userID", user.ID.String()),
		slog.Duration("sessionTTL", srv.tokenService.TTL()),
	)

	return &usecase.LoginOutput{
		Token: token,
		User:  usecase.NewUserView(user),
	}, nil
}

// Logout clears the stored session token.
func (srv *authService) Logout(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		current, err := userRepo.FindByID(ctx, user.ID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUnauthorized, "user no longer exists")
		}
		if err != nil {
			return errors.Wrap(err, "failed to load user")
		}

		current.Token = ""

		return userRepo.Update(ctx, current)
	})
	if err != nil {
		return errors.Wrap(err, "failed to log out")
	}

	srv.log(ctx).Info("User logged out", slog.String("userID", user.ID.String()))

	return nil
}

// Current projects the authenticated user.
func (srv *authService) Current(_ context.Context, user *entity.User) (*usecase.UserView, error) {
	if user == nil {
		return nil, errors.WithStack(domainerrors.ErrUnauthorized)
	}

	return usecase.NewUserView(user), nil
}

// Authenticate resolves a bearer token to the user whose live session it is.
func (srv *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "missing token")
	}

	userID, err := srv.tokenService.Verify(token)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrNoAccess, err.Error())
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "token subject does not exist")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load token subject")
	}

	if !user.OwnsSession(token) {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "token is not the active session")
	}

	return user, nil
}

// UpdateAvatar stores a new avatar and points the user at it.
func (srv *authService) UpdateAvatar(ctx context.Context, user *entity.User, image io.Reader) (string, error) {
	if user == nil {
		return "", errors.WithStack(domainerrors.ErrUnauthorized)
	}

	avatarURL, err := srv.avatarStorage.Save(ctx, user.ID.String(), image)
	if err != nil {
		return "", errors.Wrap(err, "failed to store avatar")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		current, err := userRepo.FindByID(ctx, user.ID)
		if err != nil {
			return errors.Wrap(err, "failed to load user")
		}

		current.AvatarURL = avatarURL

		return userRepo.Update(ctx, current)
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to update avatar")
	}

	srv.log(ctx).Info("Avatar updated", slog.String("userID", user.ID.String()), slog.String("avatarURL", avatarURL))

	return avatarURL, nil
}

package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/domain/service"
	mockRepo "contacts/internal/mocks/repository"
	mockSvc "contacts/internal/mocks/service"
	mockUsecase "contacts/internal/mocks/usecase"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service       usecase.AuthUsecase
	txManager     *mockRepo.MockTransactionManager
	userRepo      *mockRepo.MockUserRepository
	hasher        *mockSvc.MockPasswordHasher
	tokenService  *mockSvc.MockTokenService
	avatars       *mockSvc.MockAvatarResolver
	avatarStorage *mockSvc.MockAvatarStorage
	verification  *mockUsecase.MockVerificationUsecase
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	fx := authServiceFixtures{
		txManager:     mockRepo.NewMockTransactionManager(t),
		userRepo:      mockRepo.NewMockUserRepository(t),
		hasher:        mockSvc.NewMockPasswordHasher(t),
		tokenService:  mockSvc.NewMockTokenService(t),
		avatars:       mockSvc.NewMockAvatarResolver(t),
		avatarStorage: mockSvc.NewMockAvatarStorage(t),
		verification:  mockUsecase.NewMockVerificationUsecase(t),
	}

	fx.service = NewAuthService(AuthServiceParams{
		TxManager:     fx.txManager,
		UserRepo:      fx.userRepo,
		Hasher:        fx.hasher,
		TokenService:  fx.tokenService,
		Avatars:       fx.avatars,
		AvatarStorage: fx.avatarStorage,
		Verification:  fx.verification,
		Logger:        newDiscardLogger(),
	})

	return fx
}

func verifiedUser() *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Email:        "ann@example.com",
		PasswordHash: "hashed",
		Subscription: entity.SubscriptionStarter,
		Verify:       true,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := &usecase.RegisterInput{Email: "ann@example.com", Password: "secret"}

	fx.verification.EXPECT().GenerateCode().Return("code-123", nil)
	fx.avatars.EXPECT().DefaultURL(input.Email).Return("https://www.gravatar.com/avatar/x?d=identicon")
	expectTransaction(t, fx.txManager, fx.userRepo, nil)
	fx.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed", nil)

	var created *entity.User
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			user.ID = uuid.New()
			created = user
		}).
		Return(nil)
	fx.verification.EXPECT().SendVerification(ctx, input.Email, "code-123").Return(nil)

	view, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, &usecase.UserView{Email: input.Email, Subscription: "starter"}, view)
	require.NotNil(t, created)
	assert.Equal(t, "hashed", created.PasswordHash)
	assert.Equal(t, "code-123", created.VerificationToken)
	assert.False(t, created.Verify)
	assert.Empty(t, created.Token)
	assert.Equal(t, entity.SubscriptionStarter, created.Subscription)
	assert.True(t, strings.HasPrefix(created.AvatarURL, "https://www.gravatar.com/avatar/"))
}

func TestAuthService_Register_ExplicitSubscription(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := &usecase.RegisterInput{Email: "ann@example.com", Password: "secret", Subscription: "pro"}

	fx.verification.EXPECT().GenerateCode().Return("code", nil)
	fx.avatars.EXPECT().DefaultURL(input.Email).Return("avatar")
	expectTransaction(t, fx.txManager, fx.userRepo, nil)
	fx.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	fx.verification.EXPECT().SendVerification(ctx, input.Email, "code").Return(nil)

	view, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "pro", view.Subscription)
}

func TestAuthService_Register_EmailInUse(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := &usecase.RegisterInput{Email: "ann@example.com", Password: "secret"}

	fx.verification.EXPECT().GenerateCode().Return("code", nil)
	fx.avatars.EXPECT().DefaultURL(input.Email).Return("avatar")
	expectTransaction(t, fx.txManager, fx.userRepo, nil)
	fx.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(verifiedUser(), nil)

	view, err := fx.service.Register(ctx, input)

	assert.Nil(t, view)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailInUse))
}

func TestAuthService_Register_UnknownSubscription(t *testing.T) {
	fx := createTestAuthService(t)

	view, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:        "ann@example.com",
		Password:     "secret",
		Subscription: "enterprise",
	})

	assert.Nil(t, view)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAuthService_Register_HashFailure(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := &usecase.RegisterInput{Email: "ann@example.com", Password: "secret"}

	fx.verification.EXPECT().GenerateCode().Return("code", nil)
	fx.avatars.EXPECT().DefaultURL(input.Email).Return("avatar")
	expectTransaction(t, fx.txManager, fx.userRepo, nil)
	fx.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash(input.Password).Return("", errors.New("boom"))

	_, err := fx.service.Register(ctx, input)

	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
}

func TestAuthService_Register_MailFailureKeepsUser(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := &usecase.RegisterInput{Email: "ann@example.com", Password: "secret"}

	fx.verification.EXPECT().GenerateCode().Return("code", nil)
	fx.avatars.EXPECT().DefaultURL(input.Email).Return("avatar")
	expectTransaction(t, fx.txManager, fx.userRepo, nil)
	fx.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).Return(nil).Once()
	fx.verification.EXPECT().
		SendVerification(ctx, input.Email, "code").
		Return(errors.Wrap(domainerrors.ErrEmailDeliveryFailed, "smtp down"))

	view, err := fx.service.Register(ctx, input)

	assert.Nil(t, view)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailDeliveryFailed))
}

func TestAuthService_VerifyEmail(t *testing.T) {
	t.Run("known code", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		user := &entity.User{ID: uuid.New(), VerificationToken: "code"}

		fx.userRepo.EXPECT().FindByVerificationToken(ctx, "code").Return(user, nil)
		fx.verification.EXPECT().MarkVerified(ctx, user).Return(nil)

		require.NoError(t, fx.service.VerifyEmail(ctx, "code"))
	})

	t.Run("unknown code", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().FindByVerificationToken(ctx, "nope").Return(nil, repository.ErrUserNotFound)

		err := fx.service.VerifyEmail(ctx, "nope")
		assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	})

	t.Run("lookup failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().FindByVerificationToken(ctx, "code").Return(nil, errors.New("db down"))

		err := fx.service.VerifyEmail(ctx, "code")
		require.Error(t, err)
		assert.False(t, errors.Is(err, domainerrors.ErrUserNotFound))
	})
}

func TestAuthService_ResendVerification(t *testing.T) {
	t.Run("unverified user gets the same code", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		user := &entity.User{ID: uuid.New(), Email: "ann@example.com", VerificationToken: "code"}

		fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
		fx.verification.EXPECT().SendVerification(ctx, user.Email, "code").Return(nil)

		require.NoError(t, fx.service.ResendVerification(ctx, user.Email))
	})

	t.Run("already verified", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		user := verifiedUser()

		fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)

		err := fx.service.ResendVerification(ctx, user.Email)
		assert.True(t, errors.Is(err, domainerrors.ErrAlreadyVerified))
	})

	t.Run("unknown email", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

		err := fx.service.ResendVerification(ctx, "ghost@example.com")
		assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	})
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := verifiedUser()
	user.Token = "old-token"

	fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fx.hasher.EXPECT().Check("secret", "hashed").Return(true)
	fx.tokenService.EXPECT().Issue(user.ID).Return("new-token", nil)
	fx.tokenService.EXPECT().TTL().Return(23 * time.Hour).Once()
	fx.userRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(u *entity.User) bool { return u.Token == "new-token" })).
		Return(nil)

	out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "new-token", out.Token)
	assert.Equal(t, &usecase.UserView{Email: user.Email, Subscription: "starter"}, out.User)
}

func TestAuthService_Login_Rejections(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

		out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "ghost@example.com", Password: "secret"})
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})

	t.Run("wrong password", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		user := verifiedUser()

		fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
		fx.hasher.EXPECT().Check("wrong", "hashed").Return(false)

		out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "wrong"})
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})

	t.Run("not verified", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		user := verifiedUser()
		user.Verify = false
		user.VerificationToken = "code"

		fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
		fx.hasher.EXPECT().Check("secret", "hashed").Return(true)

		out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "secret"})
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, domainerrors.ErrNotVerified))
	})

	t.Run("token issue failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		user := verifiedUser()

		fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
		fx.hasher.EXPECT().Check("secret", "hashed").Return(true)
		fx.tokenService.EXPECT().Issue(user.ID).Return("", errors.New("sign failed"))

		_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "secret"})
		assert.True(t, errors.Is(err, domainerrors.ErrTokenIssueFailed))
	})
}

func TestAuthService_Logout(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := verifiedUser()
	user.Token = "live"
	stored := *user

	expectTransaction(t, fx.txManager, fx.userRepo, nil)
	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(&stored, nil)
	fx.userRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(u *entity.User) bool { return u.ID == user.ID && u.Token == "" })).
		Return(nil)

	require.NoError(t, fx.service.Logout(ctx, user))
}

func TestAuthService_Logout_NoUser(t *testing.T) {
	fx := createTestAuthService(t)

	err := fx.service.Logout(context.Background(), nil)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestAuthService_Current(t *testing.T) {
	fx := createTestAuthService(t)
	user := verifiedUser()
	user.Subscription = entity.SubscriptionBusiness

	view, err := fx.service.Current(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, &usecase.UserView{Email: user.Email, Subscription: "business"}, view)

	_, err = fx.service.Current(context.Background(), nil)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Run("live session", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		user := verifiedUser()
		user.Token = "live"

		fx.tokenService.EXPECT().Verify("live").Return(user.ID, nil)
		fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)

		got, err := fx.service.Authenticate(ctx, "live")
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("missing token", func(t *testing.T) {
		fx := createTestAuthService(t)

		_, err := fx.service.Authenticate(context.Background(), "")
		assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	})

	t.Run("bad signature", func(t *testing.T) {
		fx := createTestAuthService(t)

		fx.tokenService.EXPECT().Verify("forged").Return(uuid.Nil, service.ErrInvalidToken)

		_, err := fx.service.Authenticate(context.Background(), "forged")
		assert.True(t, errors.Is(err, domainerrors.ErrNoAccess))
	})

	t.Run("subject gone", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		id := uuid.New()

		fx.tokenService.EXPECT().Verify("orphan").Return(id, nil)
		fx.userRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrUserNotFound)

		_, err := fx.service.Authenticate(ctx, "orphan")
		assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	})

	t.Run("superseded or logged out session", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		user := verifiedUser()
		user.Token = "newer"

		fx.tokenService.EXPECT().Verify("older").Return(user.ID, nil)
		fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)

		_, err := fx.service.Authenticate(ctx, "older")
		assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	})
}

func TestAuthService_UpdateAvatar(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := verifiedUser()
	stored := *user
	image := strings.NewReader("png bytes")

	fx.avatarStorage.EXPECT().
		Save(ctx, user.ID.String(), image).
		Return("http://localhost:3000/avatars/a.jpg", nil)
	expectTransaction(t, fx.txManager, fx.userRepo, nil)
	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(&stored, nil)
	fx.userRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.AvatarURL == "http://localhost:3000/avatars/a.jpg"
		})).
		Return(nil)

	url, err := fx.service.UpdateAvatar(ctx, user, image)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/avatars/a.jpg", url)
}

func TestAuthService_UpdateAvatar_InvalidImage(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := verifiedUser()
	image := strings.NewReader("not an image")

	fx.avatarStorage.EXPECT().
		Save(ctx, user.ID.String(), image).
		Return("", errors.Wrap(domainerrors.ErrAvatarInvalid, "unknown format"))

	_, err := fx.service.UpdateAvatar(ctx, user, image)
	assert.True(t, errors.Is(err, domainerrors.ErrAvatarInvalid))
}

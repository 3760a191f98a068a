package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contacts/config"
	"contacts/internal/delivery/api/middleware"
	"contacts/internal/delivery/api/response"
	"contacts/internal/delivery/api/router"
	"contacts/internal/delivery/api/router/handler"
	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	mockSvc "contacts/internal/mocks/service"
	mockUsecase "contacts/internal/mocks/usecase"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type apiFixtures struct {
	echo      *echo.Echo
	authUC    *mockUsecase.MockAuthUsecase
	contactUC *mockUsecase.MockContactUsecase
	storage   *mockSvc.MockAvatarStorage
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "1MB"

	return cfg
}

func createTestAPI(t *testing.T) apiFixtures {
	fx := apiFixtures{
		authUC:    mockUsecase.NewMockAuthUsecase(t),
		contactUC: mockUsecase.NewMockContactUsecase(t),
		storage:   mockSvc.NewMockAvatarStorage(t),
	}

	logger := newDiscardLogger()
	fx.echo = NewEcho(newTestConfig(), logger, router.RouterParams{
		AuthHandler:    handler.NewAuthHandler(handler.AuthHandlerParams{AuthUC: fx.authUC, Logger: logger}),
		ContactHandler: handler.NewContactHandler(handler.ContactHandlerParams{ContactUC: fx.contactUC, Logger: logger}),
		AvatarHandler:  handler.NewAvatarHandler(handler.AvatarHandlerParams{Storage: fx.storage, Logger: logger}),
		AuthMiddleware: middleware.NewAuthMiddleware(middleware.AuthMiddlewareParams{AuthUC: fx.authUC, Logger: logger}),
	})

	return fx
}

func (fx apiFixtures) do(method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	return rec
}

// authenticateAs makes the auth usecase accept token for user.
func (fx apiFixtures) authenticateAs(token string, user *entity.User) {
	fx.authUC.EXPECT().Authenticate(mock.Anything, token).Return(user, nil)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	require.NotNil(t, body.Meta)

	return body
}

func TestHealthCheck(t *testing.T) {
	fx := createTestAPI(t)

	rec := fx.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestRequestIDIsEchoed(t *testing.T) {
	fx := createTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "trace-42")
	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "trace-42", rec.Header().Get(deliverycontext.HeaderXRequestID))
	body := decodeError(t, rec)
	assert.Equal(t, "trace-42", body.Meta.RequestID)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestRegister(t *testing.T) {
	fx := createTestAPI(t)

	fx.authUC.EXPECT().
		Register(mock.Anything, &usecase.RegisterInput{Email: "a@b.com", Password: "secret1"}).
		Return(&usecase.UserView{Email: "a@b.com", Subscription: "starter"}, nil)

	rec := fx.do(http.MethodPost, "/users/register", `{"email":"a@b.com","password":"secret1"}`, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"user":{"email":"a@b.com","subscription":"starter"}}`, rec.Body.String())
}

func TestRegister_ValidationFailure(t *testing.T) {
	fx := createTestAPI(t)

	rec := fx.do(http.MethodPost, "/users/register", `{"email":"not-an-email","password":"secret1"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Equal(t, `"email" must be a valid email`, body.Error.Message)
}

func TestRegister_MalformedJSON(t *testing.T) {
	fx := createTestAPI(t)

	rec := fx.do(http.MethodPost, "/users/register", `{"email":`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec).Error.Code)
}

func TestRegister_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "email in use", err: errors.Wrap(domainerrors.ErrEmailInUse, "dup"), wantCode: http.StatusConflict, wantBody: "EMAIL_IN_USE"},
		{name: "mail failure", err: errors.Wrap(domainerrors.ErrEmailDeliveryFailed, "smtp"), wantCode: http.StatusBadGateway, wantBody: "EMAIL_DELIVERY_FAILED"},
		{name: "unknown", err: errors.New("pq: connection reset"), wantCode: http.StatusInternalServerError, wantBody: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAPI(t)

			fx.authUC.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := fx.do(http.MethodPost, "/users/register", `{"email":"a@b.com","password":"secret1"}`, "")

			assert.Equal(t, tt.wantCode, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.wantBody, body.Error.Code)
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}

func TestVerifyEmail(t *testing.T) {
	fx := createTestAPI(t)

	fx.authUC.EXPECT().VerifyEmail(mock.Anything, "good").Return(nil)
	fx.authUC.EXPECT().VerifyEmail(mock.Anything, "bad").Return(errors.Wrap(domainerrors.ErrUserNotFound, "no code"))

	rec := fx.do(http.MethodGet, "/users/verify/good", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Verification successful"}`, rec.Body.String())

	rec = fx.do(http.MethodGet, "/users/verify/bad", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeError(t, rec).Error.Message)
}

func TestResendVerification(t *testing.T) {
	fx := createTestAPI(t)

	rec := fx.do(http.MethodPost, "/users/verify", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"email" is required`, decodeError(t, rec).Error.Message)

	fx.authUC.EXPECT().ResendVerification(mock.Anything, "a@b.com").Return(errors.WithStack(domainerrors.ErrAlreadyVerified))
	rec = fx.do(http.MethodPost, "/users/verify", `{"email":"a@b.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Verification has already been passed", decodeError(t, rec).Error.Message)
}

func TestLogin(t *testing.T) {
	fx := createTestAPI(t)

	fx.authUC.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{Email: "a@b.com", Password: "secret1"}).
		Return(&usecase.LoginOutput{Token: "jwt", User: &usecase.UserView{Email: "a@b.com", Subscription: "pro"}}, nil)
	fx.authUC.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{Email: "a@b.com", Password: "wrongpass"}).
		Return(nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "mismatch"))

	rec := fx.do(http.MethodPost, "/users/login", `{"email":"a@b.com","password":"secret1"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"token":"jwt","user":{"email":"a@b.com","subscription":"pro"}}`, rec.Body.String())

	rec = fx.do(http.MethodPost, "/users/login", `{"email":"a@b.com","password":"wrongpass"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Email or password is wrong", decodeError(t, rec).Error.Message)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		setup   func(fx apiFixtures)
		wantMsg string
	}{
		{name: "missing header", wantMsg: "Not authorized"},
		{name: "wrong scheme", header: "Token abc", wantMsg: "Not authorized"},
		{name: "lowercase scheme", header: "bearer abc", wantMsg: "Not authorized"},
		{name: "empty token", header: "Bearer ", wantMsg: "Not authorized"},
		{
			name:   "invalid token",
			header: "Bearer forged",
			setup: func(fx apiFixtures) {
				fx.authUC.EXPECT().Authenticate(mock.Anything, "forged").Return(nil, errors.Wrap(domainerrors.ErrNoAccess, "bad signature"))
			},
			wantMsg: "no access",
		},
		{
			name:   "stale session",
			header: "Bearer stale",
			setup: func(fx apiFixtures) {
				fx.authUC.EXPECT().Authenticate(mock.Anything, "stale").Return(nil, errors.Wrap(domainerrors.ErrUnauthorized, "mismatch"))
			},
			wantMsg: "Not authorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAPI(t)
			if tt.setup != nil {
				tt.setup(fx)
			}

			req := httptest.NewRequest(http.MethodGet, "/users/current", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			fx.echo.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, rec).Error.Message)
		})
	}
}

func TestCurrentAndLogout(t *testing.T) {
	fx := createTestAPI(t)
	user := &entity.User{ID: uuid.New(), Email: "a@b.com", Subscription: entity.SubscriptionStarter, Verify: true, Token: "jwt"}

	fx.authenticateAs("jwt", user)
	fx.authUC.EXPECT().Current(mock.Anything, user).Return(usecase.NewUserView(user), nil)
	fx.authUC.EXPECT().
		Logout(mock.MatchedBy(func(ctx context.Context) bool {
			return deliverycontext.GetUser(ctx) == user
		}), user).
		Return(nil)

	rec := fx.do(http.MethodGet, "/users/current", "", "jwt")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"email":"a@b.com","subscription":"starter"}`, rec.Body.String())

	rec = fx.do(http.MethodPost, "/users/logout", "", "jwt")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestUpdateAvatar(t *testing.T) {
	fx := createTestAPI(t)
	user := &entity.User{ID: uuid.New(), Email: "a@b.com", Token: "jwt"}
	fx.authenticateAs("jwt", user)

	rec := fx.do(http.MethodPatch, "/users/avatars", "", "jwt")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "AVATAR_MISSING", decodeError(t, rec).Error.Code)

	fx.authUC.EXPECT().
		UpdateAvatar(mock.Anything, user, mock.Anything).
		RunAndReturn(func(_ context.Context, _ *entity.User, image io.Reader) (string, error) {
			data, err := io.ReadAll(image)
			if err != nil {
				return "", err
			}
			if string(data) != "fake-png" {
				return "", errors.WithStack(domainerrors.ErrAvatarInvalid)
			}

			return "http://localhost:3000/avatars/x.jpg", nil
		})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("avatar", "me.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-png"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPatch, "/users/avatars", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer jwt")
	rec = httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"avatarURL":"http://localhost:3000/avatars/x.jpg"}`, rec.Body.String())
}

func TestServeAvatar(t *testing.T) {
	fx := createTestAPI(t)

	fx.storage.EXPECT().Open(mock.Anything, "u_1.jpg").Return(io.NopCloser(strings.NewReader("jpegdata")), nil)
	fx.storage.EXPECT().Open(mock.Anything, "missing.jpg").Return(nil, errors.WithStack(domainerrors.ErrNotFound))

	rec := fx.do(http.MethodGet, "/avatars/u_1.jpg", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "jpegdata", rec.Body.String())

	rec = fx.do(http.MethodGet, "/avatars/missing.jpg", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContacts_InvalidID(t *testing.T) {
	fx := createTestAPI(t)
	fx.authenticateAs("jwt", &entity.User{ID: uuid.New(), Token: "jwt"})

	rec := fx.do(http.MethodGet, "/contacts/abc", "", "jwt")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "INVALID_ID", body.Error.Code)
	assert.Equal(t, "Id abc is not valid!", body.Error.Message)
}

func TestContacts_RequireAuth(t *testing.T) {
	fx := createTestAPI(t)

	rec := fx.do(http.MethodGet, "/contacts", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestContacts_List(t *testing.T) {
	fx := createTestAPI(t)
	owner := uuid.New()
	fx.authenticateAs("jwt", &entity.User{ID: owner, Token: "jwt"})

	contact := &entity.Contact{ID: uuid.New(), OwnerID: owner, Name: "Ann", Email: "ann@x.com", Phone: "1", Favorite: true}
	fx.contactUC.EXPECT().
		List(mock.Anything, owner, mock.MatchedBy(func(f entity.ContactFilter) bool {
			return f.Favorite != nil && *f.Favorite && f.Page == 2 && f.Limit == 5
		})).
		Return([]*entity.Contact{contact}, nil)

	rec := fx.do(http.MethodGet, "/contacts?favorite=true&page=2&limit=5", "", "jwt")

	require.Equal(t, http.StatusOK, rec.Code)
	var views []handler.ContactView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, contact.ID, views[0].ID)
	assert.Equal(t, owner, views[0].Owner)
	assert.True(t, views[0].Favorite)
}

func TestContacts_ListWithoutFilter(t *testing.T) {
	fx := createTestAPI(t)
	owner := uuid.New()
	fx.authenticateAs("jwt", &entity.User{ID: owner, Token: "jwt"})

	fx.contactUC.EXPECT().List(mock.Anything, owner, entity.ContactFilter{}).Return(nil, nil)

	rec := fx.do(http.MethodGet, "/contacts", "", "jwt")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestContacts_GetNotFound(t *testing.T) {
	fx := createTestAPI(t)
	owner := uuid.New()
	id := uuid.New()
	fx.authenticateAs("jwt", &entity.User{ID: owner, Token: "jwt"})

	fx.contactUC.EXPECT().Get(mock.Anything, owner, id).Return(nil, errors.WithStack(domainerrors.ErrContactNotFound))

	rec := fx.do(http.MethodGet, "/contacts/"+id.String(), "", "jwt")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", decodeError(t, rec).Error.Message)
}

func TestContacts_Create(t *testing.T) {
	fx := createTestAPI(t)
	owner := uuid.New()
	fx.authenticateAs("jwt", &entity.User{ID: owner, Token: "jwt"})

	fx.contactUC.EXPECT().
		Create(mock.Anything, owner, &usecase.ContactInput{Name: "Ann", Email: "ann@x.com", Phone: "123"}).
		Return(&entity.Contact{ID: uuid.New(), OwnerID: owner, Name: "Ann", Email: "ann@x.com", Phone: "123"}, nil)

	rec := fx.do(http.MethodPost, "/contacts", `{"name":"Ann","email":"ann@x.com","phone":"123"}`, "jwt")
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = fx.do(http.MethodPost, "/contacts", `{"name":"Ann","phone":"123"}`, "jwt")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"email" is required`, decodeError(t, rec).Error.Message)
}

func TestContacts_UpdateFavorite(t *testing.T) {
	fx := createTestAPI(t)
	owner := uuid.New()
	id := uuid.New()
	fx.authenticateAs("jwt", &entity.User{ID: owner, Token: "jwt"})

	fx.contactUC.EXPECT().
		UpdateFavorite(mock.Anything, owner, id, (*bool)(nil)).
		Return(nil, errors.WithStack(domainerrors.ErrMissingFavorite))

	rec := fx.do(http.MethodPatch, "/contacts/"+id.String()+"/favorite", `{}`, "jwt")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing field: favorite", decodeError(t, rec).Error.Message)
}

func TestContacts_QRCode(t *testing.T) {
	fx := createTestAPI(t)
	owner := uuid.New()
	id := uuid.New()
	fx.authenticateAs("jwt", &entity.User{ID: owner, Token: "jwt"})

	fx.contactUC.EXPECT().QRCode(mock.Anything, owner, id).Return([]byte("png"), nil)

	rec := fx.do(http.MethodGet, "/contacts/"+id.String()+"/qr", "", "jwt")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "png", rec.Body.String())
}

func TestUnhandledPanicIsInternalError(t *testing.T) {
	fx := createTestAPI(t)
	owner := uuid.New()
	fx.authenticateAs("jwt", &entity.User{ID: owner, Token: "jwt"})

	fx.contactUC.EXPECT().List(mock.Anything, owner, mock.Anything).
		RunAndReturn(func(context.Context, uuid.UUID, entity.ContactFilter) ([]*entity.Contact, error) {
			panic("boom")
		})

	rec := fx.do(http.MethodGet, "/contacts", "", "jwt")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"contacts/internal/delivery/api/middleware"
	"contacts/internal/delivery/api/response"
	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ContactHandlerParams holds dependencies for ContactHandler, injected by Fx.
type ContactHandlerParams struct {
	fx.In

	ContactUC usecase.ContactUsecase
	Logger    *slog.Logger
}

// ContactHandler serves the /contacts routes. Every route runs behind the
// auth middleware, so the requester is always known.
type ContactHandler struct {
	contactUC usecase.ContactUsecase
	logger    *slog.Logger
}

// NewContactHandler is the constructor for ContactHandler.
func NewContactHandler(params ContactHandlerParams) *ContactHandler {
	return &ContactHandler{
		contactUC: params.ContactUC,
		logger:    params.Logger,
	}
}

// CreateContactRequest is the body of POST /contacts.
type CreateContactRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,contactemail"`
	Phone    string `json:"phone" validate:"required,max=30"`
	Favorite bool   `json:"favorite"`
}

// UpdateContactRequest is the body of PUT /contacts/:id. Absent fields stay unchanged.
type UpdateContactRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email" validate:"omitempty,contactemail"`
	Phone    *string `json:"phone" validate:"omitempty,min=1,max=30"`
	Favorite *bool   `json:"favorite"`
}

// FavoriteRequest is the body of PATCH /contacts/:id/favorite.
type FavoriteRequest struct {
	Favorite *bool `json:"favorite"`
}

// ListContactsQuery holds the optional listing filters.
type ListContactsQuery struct {
	Page  int `validate:"omitempty,min=1"`
	Limit int `validate:"omitempty,min=1,max=100"`
}

// ContactView is the JSON shape of a contact.
type ContactView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Favorite  bool      `json:"favorite"`
	Owner     uuid.UUID `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewContactView projects a contact entity.
func NewContactView(contact *entity.Contact) *ContactView {
	return &ContactView{
		ID:        contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Favorite:  contact.Favorite,
		Owner:     contact.OwnerID,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}
}

// List returns the requester's contacts.
func (h *ContactHandler) List(c echo.Context) error {
	owner, err := requesterID(c)
	if err != nil {
		return err
	}

	filter, err := parseListFilter(c)
	if err != nil {
		return err
	}

	contacts, err := h.contactUC.List(c.Request().Context(), owner, filter)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*ContactView, 0, len(contacts))
	for _, contact := range contacts {
		views = append(views, NewContactView(contact))
	}

	return response.Success(c, http.StatusOK, views)
}

// Get returns one contact.
func (h *ContactHandler) Get(c echo.Context) error {
	owner, id, err := requesterAndPathID(c)
	if err != nil {
		return err
	}

	contact, err := h.contactUC.Get(c.Request().Context(), owner, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewContactView(contact))
}

// Create adds a contact owned by the requester. Any owner in the body is ignored.
func (h *ContactHandler) Create(c echo.Context) error {
	owner, err := requesterID(c)
	if err != nil {
		return err
	}

	var req CreateContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact, err := h.contactUC.Create(c.Request().Context(), owner, &usecase.ContactInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Favorite: req.Favorite,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, NewContactView(contact))
}

// Update applies a partial update.
func (h *ContactHandler) Update(c echo.Context) error {
	owner, id, err := requesterAndPathID(c)
	if err != nil {
		return err
	}

	var req UpdateContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact, err := h.contactUC.Update(c.Request().Context(), owner, id, &entity.ContactPatch{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Favorite: req.Favorite,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewContactView(contact))
}

// UpdateFavorite sets the favorite flag.
func (h *ContactHandler) UpdateFavorite(c echo.Context) error {
	owner, id, err := requesterAndPathID(c)
	if err != nil {
		return err
	}

	var req FavoriteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact, err := h.contactUC.UpdateFavorite(c.Request().Context(), owner, id, req.Favorite)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewContactView(contact))
}

// Delete removes a contact and returns it.
func (h *ContactHandler) Delete(c echo.Context) error {
	owner, id, err := requesterAndPathID(c)
	if err != nil {
		return err
	}

	contact, err := h.contactUC.Delete(c.Request().Context(), owner, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewContactView(contact))
}

// QRCode returns the contact as a scannable vCard PNG.
func (h *ContactHandler) QRCode(c echo.Context) error {
	owner, id, err := requesterAndPathID(c)
	if err != nil {
		return err
	}

	png, err := h.contactUC.QRCode(c.Request().Context(), owner, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

func requesterID(c echo.Context) (uuid.UUID, error) {
	user := deliverycontext.GetUserFromEcho(c)
	if user == nil {
		return uuid.Nil, errors.WithStack(domainerrors.ErrUnauthorized)
	}

	return user.ID, nil
}

func requesterAndPathID(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	owner, err := requesterID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	id, err := middleware.PathID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	return owner, id, nil
}

// parseListFilter reads ?favorite, ?page and ?limit. Absent values disable the filter.
func parseListFilter(c echo.Context) (entity.ContactFilter, error) {
	var (
		query    ListContactsQuery
		favorite bool
	)

	err := echo.QueryParamsBinder(c).
		Bool("favorite", &favorite).
		Int("page", &query.Page).
		Int("limit", &query.Limit).
		BindError()
	if err != nil {
		return entity.ContactFilter{}, errors.Wrap(
			domainerrors.ErrValidationFailed.WithMessage("Invalid query parameters"), err.Error())
	}

	if err := c.Validate(&query); err != nil {
		return entity.ContactFilter{}, errors.WithStack(err)
	}

	filter := entity.ContactFilter{Page: query.Page, Limit: query.Limit}
	if c.QueryParams().Has("favorite") {
		filter.Favorite = &favorite
	}

	return filter, nil
}

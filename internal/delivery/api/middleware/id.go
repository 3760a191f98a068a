package middleware

import (
	"fmt"

	domainerrors "contacts/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ParamID is the path parameter holding a resource id.
const ParamID = "id"

// ValidateID rejects requests whose :id is not a uuid.
func ValidateID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := uuid.Parse(c.Param(ParamID)); err != nil {
			return errors.WithStack(InvalidID(c.Param(ParamID)))
		}

		return next(c)
	}
}

// PathID returns the :id parameter already checked by ValidateID.
func PathID(c echo.Context) (uuid.UUID, error) {
	raw := c.Param(ParamID)

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.WithStack(InvalidID(raw))
	}

	return id, nil
}

// InvalidID builds the error reported for a malformed id.
func InvalidID(raw string) error {
	return domainerrors.ErrInvalidID.WithMessage(fmt.Sprintf("Id %s is not valid!", raw))
}

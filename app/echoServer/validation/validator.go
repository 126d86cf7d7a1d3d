// Package validation plugs go-playground/validator into echo's Validator hook
// so handlers can call c.Validate on bound payloads.
package validation

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type StructValidator struct {
	check *validator.Validate
}

func New() *StructValidator {
	return &StructValidator{check: validator.New()}
}

func (sv *StructValidator) Validate(i any) error {
	if err := sv.check.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

package handler

import (
	"github.com/labstack/echo/v4"

	"foodapp/pkg/errors"
)

// bindAndValidate decodes the JSON body into input and runs the
// registered validator.
func bindAndValidate(c echo.Context, input interface{}) error {
	if err := c.Bind(input); err != nil {
		return errors.BadRequest("Invalid request body", err)
	}
	if err := c.Validate(input); err != nil {
		return err
	}
	return nil
}

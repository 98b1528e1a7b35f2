package middleware

import (
	"github.com/labstack/echo/v4"

	"foodapp/internal/domain/entity"
	"foodapp/pkg/errors"
	"foodapp/pkg/response"
)

// RequireStore allows only store accounts through. Must run after
// Authenticate.
func RequireStore(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		account := CurrentAccount(c)
		if account == nil || !account.IsStoreOwner() {
			return response.Error(c, errors.Forbidden("Store access required", nil))
		}
		return next(c)
	}
}

// RequireAdmin allows only admin accounts through. Must run after
// Authenticate.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		account := CurrentAccount(c)
		if account == nil || account.Role != entity.RoleAdmin {
			return response.Error(c, errors.Forbidden("Admin access required", nil))
		}
		return next(c)
	}
}

package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"foodapp/internal/domain/entity"
	"foodapp/internal/usecase"
	"foodapp/pkg/errors"
	"foodapp/pkg/response"
)

const accountContextKey = "account"

type AuthMiddleware struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthMiddleware(authUseCase *usecase.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{authUseCase: authUseCase}
}

// Authenticate resolves the bearer token and stores the account on the
// request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if header == "" {
			return response.Error(c, errors.Unauthorized("Missing authorization header", nil))
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			return response.Error(c, errors.Unauthorized("Invalid authorization format", nil))
		}

		account, err := m.authUseCase.Authenticate(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, err)
		}

		c.Set(accountContextKey, account)
		return next(c)
	}
}

// CurrentAccount returns the authenticated account set by Authenticate
// or nil on public routes.
func CurrentAccount(c echo.Context) *entity.Account {
	account, _ := c.Get(accountContextKey).(*entity.Account)
	return account
}

package handler

import (
	"github.com/labstack/echo/v4"

	"foodapp/internal/adapter/api/middleware"
	"foodapp/internal/usecase"
	"foodapp/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, result)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	h.authUseCase.Logout(c.Request().Context())
	return response.Success(c, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	return response.Success(c, middleware.CurrentAccount(c))
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var input usecase.UpdateProfileInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.Error(c, err)
	}

	account := middleware.CurrentAccount(c)
	updated, err := h.authUseCase.UpdateProfile(c.Request().Context(), account.ID, input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, updated)
}

type changePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var input changePasswordInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.Error(c, err)
	}

	account := middleware.CurrentAccount(c)
	if err := h.authUseCase.ChangePassword(c.Request().Context(), account.ID, input.OldPassword, input.NewPassword); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "password updated"})
}

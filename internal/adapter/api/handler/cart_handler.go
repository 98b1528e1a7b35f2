package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"foodapp/internal/adapter/api/middleware"
	"foodapp/internal/usecase"
	"foodapp/pkg/errors"
	"foodapp/pkg/response"
)

type CartHandler struct {
	cartUseCase *usecase.CartUseCase
}

func NewCartHandler(cartUseCase *usecase.CartUseCase) *CartHandler {
	return &CartHandler{cartUseCase: cartUseCase}
}

func (h *CartHandler) Get(c echo.Context) error {
	cart, err := h.cartUseCase.GetCart(c.Request().Context(), middleware.CurrentAccount(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, cart)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var input usecase.AddToCartInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.Error(c, err)
	}

	cart, err := h.cartUseCase.AddToCart(c.Request().Context(), middleware.CurrentAccount(c), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, cart)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	quantity, err := strconv.Atoi(c.QueryParam("quantity"))
	if err != nil {
		return response.Error(c, errors.BadRequest("quantity must be a number", err))
	}

	cart, err := h.cartUseCase.UpdateQuantity(c.Request().Context(), middleware.CurrentAccount(c), c.Param("foodId"), quantity)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, cart)
}

func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.cartUseCase.ClearCart(c.Request().Context(), middleware.CurrentAccount(c)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "cart cleared"})
}

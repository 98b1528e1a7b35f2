package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"foodapp/internal/adapter/api/middleware"
	"foodapp/internal/usecase"
	"foodapp/pkg/response"
	"foodapp/pkg/utils"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{orderUseCase: orderUseCase}
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	var input usecase.CheckoutInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.Checkout(c.Request().Context(), middleware.CurrentAccount(c), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, order)
}

func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.orderUseCase.GetOrder(c.Request().Context(), middleware.CurrentAccount(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderUseCase.ListCustomerOrders(
		c.Request().Context(), middleware.CurrentAccount(c), c.QueryParam("status"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, orders, total, params.Page, params.PageSize)
}

func (h *OrderHandler) ListForStore(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderUseCase.ListStoreOrders(
		c.Request().Context(), middleware.CurrentAccount(c), c.QueryParam("status"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, orders, total, params.Page, params.PageSize)
}

type updateStatusInput struct {
	Status string `json:"status" validate:"required,oneof=CONFIRMED DELIVERING COMPLETED CANCELLED"`
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var input updateStatusInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.UpdateStatus(c.Request().Context(), middleware.CurrentAccount(c), c.Param("id"), input.Status)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}

func (h *OrderHandler) RevenueStats(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year == 0 {
		year = time.Now().Year()
	}
	period := c.QueryParam("period")
	if period == "" {
		period = "month"
	}

	stats, err := h.orderUseCase.RevenueStats(c.Request().Context(), middleware.CurrentAccount(c), year, period)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stats)
}

func (h *OrderHandler) RevenueByFood(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year == 0 {
		year = time.Now().Year()
	}

	stats, err := h.orderUseCase.RevenueByFood(c.Request().Context(), middleware.CurrentAccount(c), year)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stats)
}

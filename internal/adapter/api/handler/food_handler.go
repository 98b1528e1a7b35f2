package handler

import (
	"github.com/labstack/echo/v4"

	"foodapp/internal/adapter/api/middleware"
	"foodapp/internal/domain/repository"
	"foodapp/internal/usecase"
	"foodapp/pkg/response"
	"foodapp/pkg/utils"
)

type FoodHandler struct {
	foodUseCase *usecase.FoodUseCase
}

func NewFoodHandler(foodUseCase *usecase.FoodUseCase) *FoodHandler {
	return &FoodHandler{foodUseCase: foodUseCase}
}

func (h *FoodHandler) Create(c echo.Context) error {
	var input usecase.CreateFoodInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.Error(c, err)
	}

	food, err := h.foodUseCase.CreateFood(c.Request().Context(), middleware.CurrentAccount(c), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, food)
}

func (h *FoodHandler) Get(c echo.Context) error {
	food, err := h.foodUseCase.GetFood(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, food)
}

func (h *FoodHandler) List(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	filter := repository.FoodFilter{
		StoreID:    c.QueryParam("store_id"),
		CategoryID: c.QueryParam("category_id"),
		MealTime:   c.QueryParam("meal_time"),
		Search:     c.QueryParam("search"),
	}

	foods, total, err := h.foodUseCase.ListFoods(c.Request().Context(), filter, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, foods, total, params.Page, params.PageSize)
}

func (h *FoodHandler) Update(c echo.Context) error {
	var input usecase.UpdateFoodInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.Error(c, err)
	}

	food, err := h.foodUseCase.UpdateFood(c.Request().Context(), middleware.CurrentAccount(c), c.Param("id"), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, food)
}

func (h *FoodHandler) Delete(c echo.Context) error {
	if err := h.foodUseCase.DeleteFood(c.Request().Context(), middleware.CurrentAccount(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "food deleted"})
}

func (h *FoodHandler) ListCategories(c echo.Context) error {
	categories, err := h.foodUseCase.ListCategories(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, categories)
}

func (h *FoodHandler) CreateMenu(c echo.Context) error {
	var input usecase.MenuInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.Error(c, err)
	}

	menu, err := h.foodUseCase.CreateMenu(c.Request().Context(), middleware.CurrentAccount(c), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, menu)
}

func (h *FoodHandler) ListMenus(c echo.Context) error {
	menus, err := h.foodUseCase.ListMenus(c.Request().Context(), c.Param("storeId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, menus)
}

func (h *FoodHandler) UpdateMenu(c echo.Context) error {
	var input usecase.MenuInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.Error(c, err)
	}

	menu, err := h.foodUseCase.UpdateMenu(c.Request().Context(), middleware.CurrentAccount(c), c.Param("id"), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, menu)
}

func (h *FoodHandler) DeleteMenu(c echo.Context) error {
	if err := h.foodUseCase.DeleteMenu(c.Request().Context(), middleware.CurrentAccount(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "menu deleted"})
}

package handler

import (
	"github.com/labstack/echo/v4"

	"foodapp/internal/adapter/api/middleware"
	"foodapp/internal/usecase"
	"foodapp/pkg/response"
	"foodapp/pkg/utils"
)

type StoreHandler struct {
	storeUseCase *usecase.StoreUseCase
}

func NewStoreHandler(storeUseCase *usecase.StoreUseCase) *StoreHandler {
	return &StoreHandler{storeUseCase: storeUseCase}
}

func (h *StoreHandler) Create(c echo.Context) error {
	var input usecase.CreateStoreInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.Error(c, err)
	}

	store, err := h.storeUseCase.CreateStore(c.Request().Context(), middleware.CurrentAccount(c), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, store)
}

func (h *StoreHandler) Get(c echo.Context) error {
	store, err := h.storeUseCase.GetStore(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, store)
}

func (h *StoreHandler) List(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	stores, total, err := h.storeUseCase.ListStores(c.Request().Context(), c.QueryParam("search"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, stores, total, params.Page, params.PageSize)
}

func (h *StoreHandler) Update(c echo.Context) error {
	var input usecase.UpdateStoreInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.Error(c, err)
	}

	store, err := h.storeUseCase.UpdateStore(c.Request().Context(), middleware.CurrentAccount(c), c.Param("id"), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, store)
}

func (h *StoreHandler) Approve(c echo.Context) error {
	store, err := h.storeUseCase.ApproveStore(c.Request().Context(), middleware.CurrentAccount(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, store)
}

package handler

import (
	"github.com/labstack/echo/v4"

	"foodapp/internal/adapter/api/middleware"
	"foodapp/internal/usecase"
	"foodapp/pkg/response"
	"foodapp/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase}
}

type setupChatInput struct {
	CounterpartID string `json:"counterpart_id" validate:"required"`

	// Create defaults to true: opening a conversation from a store or
	// order screen always establishes the room. Passing false only
	// repairs an existing room.
	Create *bool `json:"create"`
}

// Setup opens, or repairs, the 1:1 room with the counterpart and
// returns it.
func (h *ChatHandler) Setup(c echo.Context) error {
	var input setupChatInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.Error(c, err)
	}

	create := input.Create == nil || *input.Create
	room, err := h.chatUseCase.SetupRoom(c.Request().Context(), middleware.CurrentAccount(c), usecase.SetupRoomInput{
		CounterpartID: input.CounterpartID,
		Create:        create,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, room)
}

type sendMessageInput struct {
	Text string `json:"text" validate:"required"`
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var input sendMessageInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), middleware.CurrentAccount(c), c.Param("roomId"), input.Text)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, message)
}

func (h *ChatHandler) ListRooms(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	rooms, total, err := h.chatUseCase.ListRooms(c.Request().Context(), middleware.CurrentAccount(c), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, rooms, total, params.Page, params.PageSize)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.ListMessages(c.Request().Context(), middleware.CurrentAccount(c), c.Param("roomId"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, messages, total, params.Page, params.PageSize)
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	if err := h.chatUseCase.MarkRoomRead(c.Request().Context(), middleware.CurrentAccount(c), c.Param("roomId")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "marked read"})
}

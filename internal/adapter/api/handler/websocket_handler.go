package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"foodapp/internal/infrastructure/websocket"
	"foodapp/internal/usecase"
	"foodapp/pkg/errors"
	"foodapp/pkg/logger"
	"foodapp/pkg/response"
)

type WebSocketHandler struct {
	manager     *websocket.Manager
	authUseCase *usecase.AuthUseCase
	chatUseCase *usecase.ChatUseCase
}

func NewWebSocketHandler(
	manager *websocket.Manager,
	authUseCase *usecase.AuthUseCase,
	chatUseCase *usecase.ChatUseCase,
) *WebSocketHandler {
	return &WebSocketHandler{
		manager:     manager,
		authUseCase: authUseCase,
		chatUseCase: chatUseCase,
	}
}

// Connect upgrades to a websocket and streams the caller's chat data.
// Browsers cannot set headers on a websocket handshake, so the token
// travels as a query parameter. The caller always receives live room
// list snapshots; passing ?room=<id> additionally streams that room's
// message history on every change.
func (h *WebSocketHandler) Connect(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.Error(c, errors.Unauthorized("Missing token", nil))
	}

	account, err := h.authUseCase.Authenticate(c.Request().Context(), token)
	if err != nil {
		return response.Error(c, err)
	}

	client, err := h.manager.HandleConnection(c.Response(), c.Request(), account.ID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-client.Done()
		cancel()
	}()

	rooms, roomErrs := h.chatUseCase.WatchRoomList(ctx, account)
	go func() {
		for {
			select {
			case snapshot, ok := <-rooms:
				if !ok {
					if err, open := <-roomErrs; open {
						h.manager.Push(account.ID, "chat.error", err.Error())
					}
					return
				}
				h.manager.Push(account.ID, "chat.rooms", snapshot)
			case <-ctx.Done():
				return
			}
		}
	}()

	if roomID := c.QueryParam("room"); roomID != "" {
		messages, msgErrs, err := h.chatUseCase.WatchMessages(ctx, account, roomID)
		if err != nil {
			logger.Warn("Rejecting message watch on %s for %s: %v", roomID, account.ID, err)
			h.manager.Push(account.ID, "chat.error", err.Error())
		} else {
			go func() {
				for {
					select {
					case snapshot, ok := <-messages:
						if !ok {
							if err, open := <-msgErrs; open {
								h.manager.Push(account.ID, "chat.error", err.Error())
							}
							return
						}
						h.manager.Push(account.ID, "chat.history", snapshot)
					case <-ctx.Done():
						return
					}
				}
			}()
		}
	}

	return nil
}

package router

import (
	"github.com/labstack/echo/v4"

	"foodapp/internal/adapter/api/handler"
)

func setupChatRoutes(g *echo.Group, h *handler.ChatHandler) {
	chats := g.Group("/chats")

	chats.POST("/setup", h.Setup)
	chats.GET("", h.ListRooms)
	chats.GET("/:roomId/messages", h.ListMessages)
	chats.POST("/:roomId/messages", h.SendMessage)
	chats.POST("/:roomId/read", h.MarkRead)
}

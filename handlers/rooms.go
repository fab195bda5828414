package handlers

import (
	"net/http"

	roomRepo "roombook/database/repository/room"
	"roombook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoomHandler serves the room directory read path.
type RoomHandler struct {
	Rooms roomRepo.RoomRepository
}

func NewRoomHandler(rooms roomRepo.RoomRepository) *RoomHandler {
	return &RoomHandler{Rooms: rooms}
}

// ListRoomsHandler returns every room with its details.
func (h *RoomHandler) ListRoomsHandler(c *gin.Context) {
	rooms, err := h.Rooms.List(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list rooms", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list rooms", err.Error())
		return
	}
	c.JSON(http.StatusOK, rooms)
}

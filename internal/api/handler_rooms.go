package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-access-backend/internal/model"
	"hotel-access-backend/internal/store"
)

type createRoomRequest struct {
	ID       string `json:"id" binding:"required"`
	Type     string `json:"type" binding:"required"`
	DeviceID string `json:"deviceId"`
}

// ListRooms handles GET /api/rooms.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.store.ListRooms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// CreateRoom handles POST /api/rooms.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	room := &model.Room{
		ID:     req.ID,
		Type:   req.Type,
		Status: model.RoomVacant,
	}
	if req.DeviceID != "" {
		room.DeviceID = &req.DeviceID
	}

	if err := h.store.CreateRoom(c.Request.Context(), room); err != nil {
		switch {
		case errors.Is(err, store.ErrRoomExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Room ID already exists"})
		case errors.Is(err, store.ErrDeviceBound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Device already bound to another room"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add room"})
		}
		return
	}
	c.JSON(http.StatusOK, room)
}

type bindDeviceRequest struct {
	ID       string `json:"id" binding:"required"`
	DeviceID string `json:"deviceId"`
}

// BindDevice handles PUT /api/rooms: rebinding or clearing the door
// controller guarding a room.
func (h *Handler) BindDevice(c *gin.Context) {
	var req bindDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	room, err := h.store.BindDeviceToRoom(c.Request.Context(), req.ID, req.DeviceID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		case errors.Is(err, store.ErrDeviceBound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Device already bound to another room"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update room"})
		}
		return
	}
	c.JSON(http.StatusOK, room)
}

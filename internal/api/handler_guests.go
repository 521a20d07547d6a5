package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotel-access-backend/internal/model"
	"hotel-access-backend/internal/store"
)

type checkInRequest struct {
	Name          string  `json:"name" binding:"required"`
	RoomID        string  `json:"roomId" binding:"required"`
	CardID        string  `json:"cardId"`
	Phone         string  `json:"phone"`
	PaymentStatus string  `json:"paymentStatus"`
	TotalAmount   float64 `json:"totalAmount"`
}

// CheckIn handles POST /api/guests.
func (h *Handler) CheckIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	guest := &model.Guest{
		ID:            uuid.NewString(),
		Name:          req.Name,
		RoomID:        req.RoomID,
		Phone:         req.Phone,
		PaymentStatus: req.PaymentStatus,
		TotalAmount:   req.TotalAmount,
	}
	if req.CardID != "" {
		guest.RFIDCardID = &req.CardID
	}

	if err := h.store.CheckInGuest(c.Request.Context(), guest); err != nil {
		switch {
		case errors.Is(err, store.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		case errors.Is(err, store.ErrRoomNotVacant):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Room is not vacant"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Check-in failed"})
		}
		return
	}
	c.JSON(http.StatusOK, guest)
}

// ListGuests handles GET /api/guests: active stays and history.
func (h *Handler) ListGuests(c *gin.Context) {
	guests, err := h.store.ListGuests(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guests"})
		return
	}
	c.JSON(http.StatusOK, guests)
}

type updateGuestRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateGuest handles PATCH /api/guests/:guestId. Checkout is the only
// supported transition.
func (h *Handler) UpdateGuest(c *gin.Context) {
	var req updateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Status != model.GuestCheckedOut {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported status"})
		return
	}

	guest, err := h.store.CheckOutGuest(c.Request.Context(), c.Param("guestId"))
	if err != nil {
		if errors.Is(err, store.ErrGuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
		return
	}
	c.JSON(http.StatusOK, guest)
}

type transferRequest struct {
	GuestID   string `json:"guestId" binding:"required"`
	OldRoomID string `json:"oldRoomId" binding:"required"`
	NewRoomID string `json:"newRoomId" binding:"required"`
}

// TransferGuest handles POST /api/guests/transfer.
func (h *Handler) TransferGuest(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	guest, err := h.store.TransferGuest(c.Request.Context(), req.GuestID, req.OldRoomID, req.NewRoomID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrGuestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found"})
		case errors.Is(err, store.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "New room not found"})
		case errors.Is(err, store.ErrRoomNotVacant):
			c.JSON(http.StatusBadRequest, gin.H{"error": "New room is not vacant"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Transfer failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "guest": guest})
}

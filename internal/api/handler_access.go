package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-access-backend/internal/access"
	"hotel-access-backend/internal/notification"
)

// accessCheckResponse is the payload the door controller firmware parses.
type accessCheckResponse struct {
	Status         int    `json:"status"`
	Allowed        bool   `json:"allowed"`
	Type           string `json:"type"`
	Name           string `json:"name"`
	AccessDuration int    `json:"access_duration"`
}

// CheckAccess handles GET /api/access/check, the endpoint the RFID door
// controllers poll to decide whether to unlock.
func (h *Handler) CheckAccess(c *gin.Context) {
	cardID := c.Query("card_id")
	if cardID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": 0, "message": "Card ID missing"})
		return
	}
	deviceID := c.Query("device_id")

	dec, err := h.access.CheckAccess(c.Request.Context(), cardID, deviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": 0, "message": "Server Error"})
		return
	}

	if !dec.Granted && h.alerts != nil {
		h.alerts.Dispatch(notification.AlertJob{DeviceID: deviceID, CardID: cardID})
	}

	resp := accessCheckResponse{
		Allowed:        dec.Granted,
		Name:           "Unknown",
		AccessDuration: dec.Duration,
	}
	if dec.Granted {
		resp.Status = 1
		resp.Type = dec.SubjectType
		resp.Name = dec.SubjectName
	}
	c.JSON(http.StatusOK, resp)
}

// QueryLogs handles GET /api/access/logs, the dashboard's audit feed.
func (h *Handler) QueryLogs(c *gin.Context) {
	filter := access.LogFilter{
		RoomID:  c.Query("roomId"),
		GuestID: c.Query("guestId"),
	}

	startParam, endParam := c.Query("start"), c.Query("end")
	if startParam != "" && endParam != "" {
		start, err := parseDate(startParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
			return
		}
		end, err := parseDate(endParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date"})
			return
		}
		filter.Start = &start
		filter.End = &end
	}

	logs, err := h.access.QueryLogs(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, access.ErrMissingFilter) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing roomId or guestId"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
